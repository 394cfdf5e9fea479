package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.Equal(t, Roster{""}, New())
	assert.Equal(t, Roster{"Dana", "Omer"}, New("Dana", "Omer"))

	src := []string{"Dana"}
	r := New(src...)
	src[0] = "changed"
	assert.Equal(t, Roster{"Dana"}, r)
}

func TestAdd(t *testing.T) {
	r := New("Dana")

	next := r.Add()

	assert.Equal(t, Roster{"Dana", ""}, next)
	assert.Equal(t, Roster{"Dana"}, r)
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		roster   Roster
		index    int
		value    string
		expected Roster
	}{
		{
			name:     "keeps whitespace while typing",
			roster:   Roster{"Dana", ""},
			index:    1,
			value:    " Om",
			expected: Roster{"Dana", " Om"},
		},
		{
			name:     "index out of range",
			roster:   Roster{"Dana"},
			index:    3,
			value:    "Omer",
			expected: Roster{"Dana"},
		},
		{
			name:     "negative index",
			roster:   Roster{"Dana"},
			index:    -1,
			value:    "Omer",
			expected: Roster{"Dana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.roster.Update(tt.index, tt.value))
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		roster   Roster
		index    int
		policy   RemovePolicy
		expected Roster
	}{
		{
			name:     "middle entry",
			roster:   Roster{"Dana", "Omer", "Lior"},
			index:    1,
			policy:   ResetToBlank,
			expected: Roster{"Dana", "Lior"},
		},
		{
			name:     "last blank entry resets",
			roster:   Roster{""},
			index:    0,
			policy:   ResetToBlank,
			expected: Roster{""},
		},
		{
			name:     "last named entry resets to blank",
			roster:   Roster{"Dana"},
			index:    0,
			policy:   ResetToBlank,
			expected: Roster{""},
		},
		{
			name:     "last entry kept",
			roster:   Roster{"Dana"},
			index:    0,
			policy:   KeepLast,
			expected: Roster{"Dana"},
		},
		{
			name:     "out of range",
			roster:   Roster{"Dana", "Omer"},
			index:    2,
			policy:   ResetToBlank,
			expected: Roster{"Dana", "Omer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.roster.Remove(tt.index, tt.policy)
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestRemove_DoesNotAliasInput(t *testing.T) {
	r := Roster{"Dana", "Omer", "Lior"}

	next := r.Remove(0, ResetToBlank)
	next[0] = "changed"

	assert.Equal(t, Roster{"Dana", "Omer", "Lior"}, r)
}

func TestCanRemove(t *testing.T) {
	assert.True(t, Roster{"Dana"}.CanRemove(ResetToBlank))
	assert.False(t, Roster{"Dana"}.CanRemove(KeepLast))
	assert.True(t, Roster{"Dana", "Omer"}.CanRemove(KeepLast))
}

func TestMaterialize(t *testing.T) {
	assert.Equal(t, []string{"Dana", "Omer"}, Roster{"  Dana ", "", "Omer"}.Materialize())
	assert.Equal(t, []string{}, Roster{" ", "\t"}.Materialize())
	assert.Equal(t, []string{"Lior", "Dana"}, Roster{"Lior", "Dana"}.Materialize())
}
