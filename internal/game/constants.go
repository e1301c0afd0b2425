package game

// DefaultMaxTurns bounds a game when the config leaves MaxTurns unset
const DefaultMaxTurns = 5000
