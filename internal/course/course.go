// Package course loads courses and computes where each participant is at a
// given simulated second.
//
// Courses are plain values: the playback clock only hands this package an
// elapsed-seconds integer, and the edit history only stores Settings.
package course

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

// Participant is one entrant moving along the course at a steady pace.
type Participant struct {
	// Name identifies the participant in the player.
	Name string `yaml:"name" json:"n"`
	// PaceSecondsPerKm is the steady pace in seconds per kilometre.
	PaceSecondsPerKm int `yaml:"pace" json:"p"`
	// StartOffsetSeconds delays the participant's start (wave starts).
	StartOffsetSeconds int `yaml:"start_offset,omitempty" json:"o,omitempty"`
}

// Course is a looped route with its participants.
type Course struct {
	Name           string        `yaml:"name" json:"n"`
	DistanceMeters int           `yaml:"distance_m" json:"d"`
	Laps           int           `yaml:"laps,omitempty" json:"l,omitempty"`
	Participants   []Participant `yaml:"participants" json:"ps"`
}

// Load reads and validates a YAML course file.
func Load(path string) (Course, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-supplied course path is intended
	if err != nil {
		if os.IsNotExist(err) {
			return Course{}, errors.Wrapf(errors.ErrCourseNotFound, "%s", path)
		}
		return Course{}, errors.Wrapf(err, "failed to read course %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return Course{}, errors.Wrapf(err, "course %s", path)
	}
	return c, nil
}

// Parse decodes and validates YAML course data.
func Parse(data []byte) (Course, error) {
	var c Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Course{}, errors.Wrap(errors.ErrInvalidCourseData, err.Error())
	}
	if err := c.Validate(); err != nil {
		return Course{}, err
	}
	return c, nil
}

// Validate checks the course for values the player cannot simulate.
// Every failure wraps ErrInvalidCourseData.
func (c Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.Wrap(errors.ErrInvalidCourseData, "name must not be empty")
	}
	if c.DistanceMeters <= 0 {
		return errors.Wrapf(errors.ErrInvalidCourseData,
			"distance_m must be positive, got %d", c.DistanceMeters)
	}
	if c.Laps < 0 {
		return errors.Wrapf(errors.ErrInvalidCourseData, "laps must not be negative, got %d", c.Laps)
	}
	if len(c.Participants) == 0 {
		return errors.Wrap(errors.ErrInvalidCourseData, "at least one participant is required")
	}
	for i, p := range c.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return errors.Wrapf(errors.ErrInvalidCourseData, "participant %d has no name", i+1)
		}
		if p.PaceSecondsPerKm <= 0 {
			return errors.Wrapf(errors.ErrInvalidCourseData,
				"participant %q pace must be positive, got %d", p.Name, p.PaceSecondsPerKm)
		}
		if p.StartOffsetSeconds < 0 {
			return errors.Wrapf(errors.ErrInvalidCourseData,
				"participant %q start_offset must not be negative", p.Name)
		}
	}
	return nil
}

// LapCount returns the number of laps, treating an unset value as one.
func (c Course) LapCount() int {
	if c.Laps < 1 {
		return 1
	}
	return c.Laps
}

// TotalMeters is the full race distance across all laps.
func (c Course) TotalMeters() int {
	return c.DistanceMeters * c.LapCount()
}

// Settings is the editable part of a course: the value the edit history
// records. Paces are aligned with Participants.
type Settings struct {
	Title string
	Paces []int
}

// Settings extracts the course's current editable values.
func (c Course) Settings() Settings {
	paces := make([]int, len(c.Participants))
	for i, p := range c.Participants {
		paces[i] = p.PaceSecondsPerKm
	}
	return Settings{Title: c.Name, Paces: paces}
}

// Apply returns a copy of c with s applied. Paces beyond the participant list
// are ignored and missing ones keep their current value.
func (c Course) Apply(s Settings) Course {
	out := c
	if title := strings.TrimSpace(s.Title); title != "" {
		out.Name = title
	}
	out.Participants = make([]Participant, len(c.Participants))
	copy(out.Participants, c.Participants)
	for i := range out.Participants {
		if i < len(s.Paces) && s.Paces[i] > 0 {
			out.Participants[i].PaceSecondsPerKm = s.Paces[i]
		}
	}
	return out
}

// WithTitle returns s with a new title, trimmed and bounded.
func (s Settings) WithTitle(title string) Settings {
	title = strings.TrimSpace(title)
	if r := []rune(title); len(r) > constants.MaxTitleLength {
		title = string(r[:constants.MaxTitleLength])
	}
	return Settings{Title: title, Paces: clonePaces(s.Paces)}
}

// WithPaceDelta returns s with participant i's pace shifted by delta seconds,
// never faster than constants.MinPaceSecondsPerKm. Out-of-range indexes
// return an unchanged copy.
func (s Settings) WithPaceDelta(i, delta int) Settings {
	out := Settings{Title: s.Title, Paces: clonePaces(s.Paces)}
	if i < 0 || i >= len(out.Paces) {
		return out
	}
	out.Paces[i] = max(out.Paces[i]+delta, constants.MinPaceSecondsPerKm)
	return out
}

func clonePaces(p []int) []int {
	if p == nil {
		return nil
	}
	out := make([]int, len(p))
	copy(out, p)
	return out
}
