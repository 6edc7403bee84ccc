package data

import (
	"FoosTableApi/internal/assert"
	"FoosTableApi/internal/validator"
	"strings"
	"testing"
)

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		valid   bool
		wantKey string
	}{
		{
			name:  "Valid Table",
			table: &Table{Name: "Break Room"},
			valid: true,
		},
		{
			name:    "Missing Name",
			table:   &Table{},
			valid:   false,
			wantKey: "name",
		},
		{
			name:    "Name Too Long",
			table:   &Table{Name: strings.Repeat("a", 51)},
			valid:   false,
			wantKey: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateTable(v, tt.table)
			assert.Equal(t, v.Valid(), tt.valid)
			if tt.wantKey != "" {
				if _, ok := v.Errors[tt.wantKey]; !ok {
					t.Errorf("expected an error for %q; got %v", tt.wantKey, v.Errors)
				}
			}
		})
	}
}

func TestValidateTeam(t *testing.T) {
	partner := int64(2)
	samePlayer := int64(1)

	tests := []struct {
		name    string
		team    *Team
		valid   bool
		wantKey string
	}{
		{
			name:  "Valid Doubles Team",
			team:  &Team{Name: "Table Wreckers", Player1ID: 1, Player2ID: &partner},
			valid: true,
		},
		{
			name:  "Valid Singles Team",
			team:  &Team{Name: "Lone Wolf", Player1ID: 1},
			valid: true,
		},
		{
			name:    "Missing Name",
			team:    &Team{Player1ID: 1},
			valid:   false,
			wantKey: "name",
		},
		{
			name:    "Name Too Long",
			team:    &Team{Name: strings.Repeat("a", 21), Player1ID: 1},
			valid:   false,
			wantKey: "name",
		},
		{
			name:    "Missing First Player",
			team:    &Team{Name: "Ghosts"},
			valid:   false,
			wantKey: "player1_id",
		},
		{
			name:    "Same Player Twice",
			team:    &Team{Name: "Clones", Player1ID: 1, Player2ID: &samePlayer},
			valid:   false,
			wantKey: "player2_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateTeam(v, tt.team)
			assert.Equal(t, v.Valid(), tt.valid)
			if tt.wantKey != "" {
				if _, ok := v.Errors[tt.wantKey]; !ok {
					t.Errorf("expected an error for %q; got %v", tt.wantKey, v.Errors)
				}
			}
		})
	}
}

func TestValidateGame(t *testing.T) {
	tests := []struct {
		name       string
		gameName   string
		uniqueCode string
		team1ID    int64
		team2ID    int64
		valid      bool
		wantKey    string
	}{
		{
			name:       "Valid Game",
			gameName:   "Friday Final",
			uniqueCode: "AB12",
			team1ID:    1,
			team2ID:    2,
			valid:      true,
		},
		{
			name:       "Missing Name",
			uniqueCode: "AB12",
			team1ID:    1,
			team2ID:    2,
			valid:      false,
			wantKey:    "name",
		},
		{
			name:       "Code Wrong Length",
			gameName:   "Friday Final",
			uniqueCode: "AB123",
			team1ID:    1,
			team2ID:    2,
			valid:      false,
			wantKey:    "unique_code",
		},
		{
			name:       "Missing Code",
			gameName:   "Friday Final",
			team1ID:    1,
			team2ID:    2,
			valid:      false,
			wantKey:    "unique_code",
		},
		{
			name:       "Missing Second Team",
			gameName:   "Friday Final",
			uniqueCode: "AB12",
			team1ID:    1,
			valid:      false,
			wantKey:    "team2_id",
		},
		{
			name:       "Same Team Twice",
			gameName:   "Friday Final",
			uniqueCode: "AB12",
			team1ID:    3,
			team2ID:    3,
			valid:      false,
			wantKey:    "team2_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			game := &Game{Name: tt.gameName}
			ValidateGame(v, game, tt.uniqueCode, tt.team1ID, tt.team2ID)
			assert.Equal(t, v.Valid(), tt.valid)
			if tt.wantKey != "" {
				if _, ok := v.Errors[tt.wantKey]; !ok {
					t.Errorf("expected an error for %q; got %v", tt.wantKey, v.Errors)
				}
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	newUser := func(firstName, lastName, email, plaintext string) *User {
		user := &User{FirstName: firstName, LastName: lastName, Email: email}
		err := user.Password.Set(plaintext)
		if err != nil {
			t.Fatal(err)
		}
		return user
	}

	tests := []struct {
		name    string
		user    *User
		valid   bool
		wantKey string
	}{
		{
			name:  "Valid User",
			user:  newUser("Jan", "Kowalski", "jan@example.com", "pa55word123"),
			valid: true,
		},
		{
			name:    "Missing First Name",
			user:    newUser("", "Kowalski", "jan@example.com", "pa55word123"),
			valid:   false,
			wantKey: "first_name",
		},
		{
			name:    "Invalid Email",
			user:    newUser("Jan", "Kowalski", "jan.example.com", "pa55word123"),
			valid:   false,
			wantKey: "email",
		},
		{
			name:    "Short Password",
			user:    newUser("Jan", "Kowalski", "jan@example.com", "pa55"),
			valid:   false,
			wantKey: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateUser(v, tt.user)
			assert.Equal(t, v.Valid(), tt.valid)
			if tt.wantKey != "" {
				if _, ok := v.Errors[tt.wantKey]; !ok {
					t.Errorf("expected an error for %q; got %v", tt.wantKey, v.Errors)
				}
			}
		})
	}
}
