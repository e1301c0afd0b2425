package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseSetup - Collecting and validating initial placements
	PhaseSetup GamePhase = iota

	// PhaseInProgress - Players alternate turns
	PhaseInProgress

	// PhaseTerminal - Outcome decided, no more turns are accepted
	PhaseTerminal

	// PhaseError - A placement or policy failure aborted the game
	PhaseError
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseInProgress:
		return "InProgress"
	case PhaseTerminal:
		return "Terminal"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseTerminal || p == PhaseError
}

// CanReceiveActions returns true if the game can process player actions in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseInProgress
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhaseInProgress, PhaseError}
	case PhaseInProgress:
		return []GamePhase{PhaseTerminal, PhaseError}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Setup":
		return PhaseSetup, nil
	case "InProgress":
		return PhaseInProgress, nil
	case "Terminal":
		return PhaseTerminal, nil
	case "Error":
		return PhaseError, nil
	default:
		return PhaseSetup, fmt.Errorf("unknown game phase %q", s)
	}
}
