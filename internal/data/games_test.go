package data

import (
	"FoosTableApi/internal/assert"
	"testing"
)

func TestPickWinner(t *testing.T) {
	tests := []struct {
		name       string
		goalsTeam1 int64
		goalsTeam2 int64
		want       int
	}{
		{
			name:       "Team One Ahead",
			goalsTeam1: 5,
			goalsTeam2: 3,
			want:       0,
		},
		{
			name:       "Team Two Ahead",
			goalsTeam1: 3,
			goalsTeam2: 5,
			want:       1,
		},
		{
			name:       "Scoreless Game",
			goalsTeam1: 0,
			goalsTeam2: 0,
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, pickWinner(tt.goalsTeam1, tt.goalsTeam2), tt.want)
		})
	}
}

// Equal scores award the win to the second stored team. Deliberate: this
// preserves the behavior clients already depend on (see pickWinner TODO).
func TestPickWinnerTieGoesToSecondTeam(t *testing.T) {
	assert.Equal(t, pickWinner(4, 4), 1)
}

func TestTeamPlayerIDs(t *testing.T) {
	partner := int64(7)

	tests := []struct {
		name string
		team *Team
		want []int64
	}{
		{
			name: "Doubles Team",
			team: &Team{Player1ID: 3, Player2ID: &partner},
			want: []int64{3, 7},
		},
		{
			name: "Singles Team",
			team: &Team{Player1ID: 3},
			want: []int64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Int64SliceEqual(t, teamPlayerIDs(tt.team), tt.want)
		})
	}
}
