package simclock

import (
	"strconv"
	"strings"

	"github.com/mrz1836/timelapse/internal/errors"
)

// Speed is the ratio of simulated time to real time.
// Only the values returned by Speeds are valid.
type Speed int

// Supported speed multipliers, in ascending order.
const (
	Speed1x   Speed = 1
	Speed10x  Speed = 10
	Speed30x  Speed = 30
	Speed60x  Speed = 60
	Speed120x Speed = 120
)

// speeds is the fixed ordered set of multipliers.
//
//nolint:gochecknoglobals // Fixed lookup table
var speeds = [...]Speed{Speed1x, Speed10x, Speed30x, Speed60x, Speed120x}

// Speeds returns the supported multipliers in ascending order.
func Speeds() []Speed {
	out := make([]Speed, len(speeds))
	copy(out, speeds[:])
	return out
}

// Valid reports whether s is one of the supported multipliers.
func (s Speed) Valid() bool {
	return s.index() >= 0
}

// String renders the multiplier as "60x".
func (s Speed) String() string {
	return strconv.Itoa(int(s)) + "x"
}

func (s Speed) index() int {
	for i, v := range speeds {
		if v == s {
			return i
		}
	}
	return -1
}

// next returns the following multiplier, or s itself at the top of the set.
func (s Speed) next() Speed {
	i := s.index()
	if i < 0 || i == len(speeds)-1 {
		return s
	}
	return speeds[i+1]
}

// prev returns the preceding multiplier, or s itself at the bottom of the set.
func (s Speed) prev() Speed {
	i := s.index()
	if i <= 0 {
		return s
	}
	return speeds[i-1]
}

// ParseSpeed parses "60" or "60x" into a Speed.
// Values outside the supported set are rejected with ErrInvalidSpeed.
func ParseSpeed(raw string) (Speed, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "x")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidSpeed, "%q is not a number", raw)
	}
	s := Speed(n)
	if !s.Valid() {
		return 0, errors.Wrapf(errors.ErrInvalidSpeed, "%q must be one of %v", raw, Speeds())
	}
	return s, nil
}
