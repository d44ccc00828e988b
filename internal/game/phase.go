package game

import "fmt"

// Phase is the stage of the hand the whole table is in
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

var phaseNames = [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown"}

func (p Phase) String() string {
	if p < Waiting || p > Showdown {
		return "unknown"
	}
	return phaseNames[p]
}

// Betting reports whether seats may bet, call, check or fold in this phase
func (p Phase) Betting() bool {
	return p >= Preflop && p <= River
}

// boardCards is how many community cards are dealt on entering p
func (p Phase) boardCards() int {
	switch p {
	case Flop:
		return 3
	case Turn, River:
		return 1
	}
	return 0
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	if p < Waiting || p > Showdown {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(b []byte) error {
	for i, n := range phaseNames {
		if n == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}
