package data

import (
	"FoosTableApi/internal/assert"
	"testing"
)

func TestEliminationWinner(t *testing.T) {
	tests := []struct {
		name    string
		players []*GamePlayer
		want    *string
	}{
		{
			name: "One Player Standing",
			players: []*GamePlayer{
				{FirstName: "Bart", Alive: false},
				{FirstName: "Joris", Alive: false},
				{FirstName: "Pieter", Alive: false},
				{FirstName: "Davy", Alive: false},
				{FirstName: "Dries", Alive: false},
				{FirstName: "Anon1", Alive: true},
			},
			want: ptr("Anon1"),
		},
		{
			name: "Multiple Players Standing",
			players: []*GamePlayer{
				{FirstName: "Bart", Alive: true},
				{FirstName: "Joris", Alive: true},
				{FirstName: "Pieter", Alive: false},
			},
			want: nil,
		},
		{
			name:    "No Players",
			players: []*GamePlayer{},
			want:    nil,
		},
		{
			name: "All Eliminated",
			players: []*GamePlayer{
				{FirstName: "Bart", Alive: false},
				{FirstName: "Joris", Alive: false},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EliminationWinner(tt.players)
			if tt.want == nil {
				if got != nil {
					t.Errorf("got winner %q; expected nil", *got)
				}
				return
			}
			if got == nil {
				t.Errorf("got nil winner; expected %q", *tt.want)
				return
			}
			assert.Equal(t, *got, *tt.want)
		})
	}
}

func TestMostKilled(t *testing.T) {
	players := []*GamePlayer{
		{UserID: 1, Kills: 2},
		{UserID: 2, Kills: 7},
		{UserID: 3, Kills: 2},
		{UserID: 4, Kills: 0},
		{UserID: 5, Kills: 9},
		{UserID: 6, Kills: 4},
	}

	ranked := MostKilled(players, 5)

	got := make([]int64, 0, len(ranked))
	for _, player := range ranked {
		got = append(got, player.UserID)
	}

	// Players 1 and 3 are tied; fetch order keeps 1 ahead.
	assert.Int64SliceEqual(t, got, []int64{5, 2, 6, 1, 3})
}

func TestMostKilledShortList(t *testing.T) {
	players := []*GamePlayer{
		{UserID: 1, Kills: 1},
		{UserID: 2, Kills: 3},
	}

	ranked := MostKilled(players, 5)
	assert.Equal(t, len(ranked), 2)
	assert.Equal(t, ranked[0].UserID, int64(2))
}

func TestMostKilledDoesNotMutateInput(t *testing.T) {
	players := []*GamePlayer{
		{UserID: 1, Kills: 1},
		{UserID: 2, Kills: 3},
	}

	MostKilled(players, 5)
	assert.Equal(t, players[0].UserID, int64(1))
}

func ptr(s string) *string {
	return &s
}
