package core

// RuntimeConfig contains the settings a front-end passes to a game.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second
	Seed     uint32 // Sequence seed; zero keeps the configured seed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a front-end needs after each frame.
type GameState struct {
	Score     int
	HighScore int
	Lines     int
	Level     int
	GameOver  bool
	Paused    bool
	Connected bool // Opponent link is up
}

// StepResult is returned by Step after each frame.
type StepResult struct {
	State GameState
}
