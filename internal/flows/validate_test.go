package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	valid := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"00:00", "00:00"},
		{"23:59", "23:59"},
		{" 08:30 ", "08:30"},
		{"12:05", "12:05"},
	}
	for _, tt := range valid {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []string{
		"",
		"9:00",
		"09:5",
		"24:00",
		"23:60",
		"25:61",
		"ab:cd",
		"09-00",
		"09:00:00",
		"9 am",
		"0900",
	}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseClock(in)
			assert.Error(t, err)
		})
	}
}

func TestNoneToEmpty(t *testing.T) {
	assert.Empty(t, noneToEmpty("no"))
	assert.Empty(t, noneToEmpty("None"))
	assert.Empty(t, noneToEmpty("-"))
	assert.Equal(t, "mild fever", noneToEmpty("mild fever"))
	assert.Equal(t, "nothing", noneToEmpty("nothing"))
}
