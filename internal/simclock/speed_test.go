package simclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

func TestSpeeds_OrderedCopy(t *testing.T) {
	t.Parallel()

	got := Speeds()
	assert.Equal(t, []Speed{1, 10, 30, 60, 120}, got)

	got[0] = 99
	assert.Equal(t, Speed1x, Speeds()[0], "callers cannot mutate the fixed set")
}

func TestSpeed_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "60x", Speed60x.String())
	assert.Equal(t, "1x", Speed1x.String())
}

func TestParseSpeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Speed
		wantErr bool
	}{
		{"1", Speed1x, false},
		{"10x", Speed10x, false},
		{" 30X ", Speed30x, false},
		{"120", Speed120x, false},
		{"2", 0, true},
		{"fast", 0, true},
		{"", 0, true},
		{"-60", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSpeed(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidSpeed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpeeds_MatchConfigurableSet(t *testing.T) {
	t.Parallel()

	want := constants.SpeedMultipliers()
	require.Len(t, Speeds(), len(want))
	for i, s := range Speeds() {
		assert.Equal(t, want[i], int(s))
	}
}
