package validator

import (
	"FoosTableApi/internal/assert"
	"testing"
)

func TestCheck(t *testing.T) {
	v := New()
	assert.Equal(t, v.Valid(), true)

	v.Check(true, "name", "must be provided")
	assert.Equal(t, v.Valid(), true)

	v.Check(false, "name", "must be provided")
	assert.Equal(t, v.Valid(), false)
	assert.Equal(t, v.Errors["name"], "must be provided")

	// The first message recorded for a key sticks.
	v.Check(false, "name", "must be 50 characters or less")
	assert.Equal(t, v.Errors["name"], "must be provided")
}

func TestMatchesEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{
			name:  "Plain Address",
			email: "jan@example.com",
			want:  true,
		},
		{
			name:  "Subdomain And Plus Tag",
			email: "jan+foos@mail.example.co.uk",
			want:  true,
		},
		{
			name:  "Missing At Sign",
			email: "jan.example.com",
			want:  false,
		},
		{
			name:  "Missing Local Part",
			email: "@example.com",
			want:  false,
		},
		{
			name:  "Trailing Dot Domain",
			email: "jan@example.",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Matches(tt.email, EmailRX), tt.want)
		})
	}
}

func TestUnique(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   bool
	}{
		{
			name:   "All Distinct",
			values: []int64{1, 2, 3},
			want:   true,
		},
		{
			name:   "Duplicate Pair",
			values: []int64{7, 7},
			want:   false,
		},
		{
			name:   "Empty",
			values: []int64{},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Unique(tt.values), tt.want)
		})
	}
}
