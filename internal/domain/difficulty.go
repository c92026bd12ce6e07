package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty tunes the AI's weighting and selection noise. It never changes
// the rules.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Hard
	Hell
)

// ErrUnknownDifficulty is returned when parsing an unrecognised level.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulties lists every level from weakest to strongest.
var Difficulties = []Difficulty{Easy, Hard, Hell}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Hell:
		return "hell"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
}

// ParseDifficulty maps "easy", "hard" or "hell" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "hard":
		return Hard, nil
	case "hell":
		return Hell, nil
	}
	return Hard, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// defenseMultiplier weights opponent runs.
func (d Difficulty) defenseMultiplier() float64 {
	switch d {
	case Easy:
		return 0.2
	case Hell:
		return 2.5
	default:
		return 1.0
	}
}

// noiseRange is the width of the uniform noise added to each candidate score.
func (d Difficulty) noiseRange() float64 {
	switch d {
	case Easy:
		return 5000
	case Hell:
		return 0
	default:
		return 20
	}
}
