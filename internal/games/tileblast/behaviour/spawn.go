package behaviour

import (
	"fmt"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
)

// Thresholds are the inclusive match sizes at which a plain match spawns a
// special tile. They are checked from Field down to Line.
type Thresholds struct {
	Line   int `yaml:"line"`
	Region int `yaml:"region"`
	Field  int `yaml:"field"`
}

// DefaultThresholds returns the standard 5/7/9 thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Line: 5, Region: 7, Field: 9}
}

// Validate checks that thresholds are positive and non-decreasing.
func (t Thresholds) Validate() error {
	if t.Line < 2 {
		return fmt.Errorf("behaviour: line threshold %d must be at least 2", t.Line)
	}
	if t.Region < t.Line || t.Field < t.Region {
		return fmt.Errorf("behaviour: thresholds must not decrease (line=%d region=%d field=%d)",
			t.Line, t.Region, t.Field)
	}
	return nil
}

// SpawnPolicy maps the size of a plain match to the special tile it leaves.
type SpawnPolicy struct {
	Thresholds Thresholds
	rng        board.Source
}

// NewSpawnPolicy creates a policy. rng picks between row and column
// destroyers; a nil rng always picks the row destroyer.
func NewSpawnPolicy(t Thresholds, rng board.Source) SpawnPolicy {
	return SpawnPolicy{Thresholds: t, rng: rng}
}

// Behaviour returns the behaviour to spawn for a match of count tiles, or
// false when the match is too small. First match wins.
func (p SpawnPolicy) Behaviour(count int) (board.Behaviour, bool) {
	switch {
	case count >= p.Thresholds.Field:
		return board.BehaviourFieldDestroyer, true
	case count >= p.Thresholds.Region:
		return board.BehaviourRegionDestroyer, true
	case count >= p.Thresholds.Line:
		if p.rng != nil && p.rng.IntN(2) == 1 {
			return board.BehaviourColumnDestroyer, true
		}
		return board.BehaviourRowDestroyer, true
	default:
		return board.BehaviourNone, false
	}
}
