package course

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/timelapse/internal/errors"
)

func TestShare_RoundTrip(t *testing.T) {
	t.Parallel()

	c := sampleCourse()
	code, err := EncodeShare(c)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "tl1."))
	assert.NotContains(t, code, "=", "codes are unpadded")

	decoded, err := DecodeShare("  " + code + "\n")
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}

func TestEncodeShare_RejectsInvalidCourse(t *testing.T) {
	t.Parallel()

	_, err := EncodeShare(Course{})

	assert.ErrorIs(t, err, errors.ErrInvalidCourseData)
}

func TestDecodeShare_Malformed(t *testing.T) {
	t.Parallel()

	enc := func(s string) string {
		return "tl1." + base64.RawURLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"missing prefix", "abc"},
		{"wrong version", "tl2.e30"},
		{"bad base64", "tl1.!!!"},
		{"not json", enc("not json")},
		{"wrong shape", enc(`{"d":"far"}`)},
		{"invalid course", enc(`{"n":"x","d":100,"ps":[]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeShare(tt.code)

			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidCourseData)
		})
	}
}
