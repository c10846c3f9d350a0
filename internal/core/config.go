package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score     int    // Current score
	GameOver  bool   // Whether the game has ended
	Won       bool   // Whether it ended by reaching its goal
	Paused    bool   // Whether the game is paused
	RunID     string // Identifies the play-through for score storage
	MovesUsed int    // Accepted moves so far
	Outcome   string // Human-readable end status, empty while playing
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
