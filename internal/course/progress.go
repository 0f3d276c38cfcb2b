package course

// Position is where a participant is at a given simulated second.
type Position struct {
	Name string
	// Meters covered so far, capped at the total distance.
	Meters int
	// Lap is the 1-based lap currently being run.
	Lap int
	// Fraction of the whole race completed, 0..1.
	Fraction float64
	// Started is false during a delayed wave start.
	Started  bool
	Finished bool
	// FinishSeconds is the simulated second the participant crosses the line.
	FinishSeconds int64
}

// FinishSeconds returns when p completes totalMeters.
func (p Participant) FinishSeconds(totalMeters int) int64 {
	// Round up so a participant is only finished once the full distance is covered.
	moving := (int64(totalMeters)*int64(p.PaceSecondsPerKm) + 999) / 1000
	return int64(p.StartOffsetSeconds) + moving
}

// Progress returns every participant's position at elapsed seconds.
func (c Course) Progress(elapsed int64) []Position {
	total := c.TotalMeters()
	out := make([]Position, 0, len(c.Participants))
	for _, p := range c.Participants {
		out = append(out, c.position(p, total, elapsed))
	}
	return out
}

func (c Course) position(p Participant, total int, elapsed int64) Position {
	pos := Position{
		Name:          p.Name,
		Lap:           1,
		FinishSeconds: p.FinishSeconds(total),
	}

	moving := elapsed - int64(p.StartOffsetSeconds)
	if moving <= 0 || total <= 0 || p.PaceSecondsPerKm <= 0 {
		pos.Started = moving > 0
		return pos
	}
	pos.Started = true

	meters := moving * 1000 / int64(p.PaceSecondsPerKm)
	if elapsed >= pos.FinishSeconds || meters >= int64(total) {
		pos.Meters = total
		pos.Finished = true
		pos.Lap = c.LapCount()
		pos.Fraction = 1
		return pos
	}

	pos.Meters = int(meters)
	pos.Lap = min(pos.Meters/c.DistanceMeters+1, c.LapCount())
	pos.Fraction = float64(pos.Meters) / float64(total)
	return pos
}

// Finished reports whether every participant has crossed the line.
func (c Course) Finished(elapsed int64) bool {
	return len(c.Participants) > 0 && elapsed >= c.FinishSeconds()
}

// FinishSeconds is when the last participant finishes.
func (c Course) FinishSeconds() int64 {
	total := c.TotalMeters()
	var last int64
	for _, p := range c.Participants {
		last = max(last, p.FinishSeconds(total))
	}
	return last
}
