package app

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects who controls the second player.
type Mode uint8

const (
	// PvP is hot-seat play: both sides are human on the same device.
	PvP Mode = iota
	// PvE puts the computer in charge of the second player.
	PvE
)

var ErrUnknownMode = errors.New("unknown mode")

func (m Mode) String() string {
	if m == PvP {
		return "pvp"
	}
	return "pve"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp":
		return PvP, nil
	case "pve":
		return PvE, nil
	}
	return PvE, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
