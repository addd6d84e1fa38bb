package mines

import "fmt"

type GameParams struct {
	Width     int `json:"width" schema:"width"`
	Height    int `json:"height" schema:"height"`
	MineCount int `json:"mine_count" schema:"mine_count"`
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

func (p GameParams) Inside(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return ConfigError{fmt.Sprintf(
			"board dimensions must be positive, got %dx%d", p.Width, p.Height,
		)}
	}
	if p.MineCount < 1 {
		return ConfigError{"mine count must be at least 1"}
	}
	if p.MineCount >= p.Cells() {
		return ConfigError{fmt.Sprintf(
			"%d mines do not fit a %dx%d board",
			p.MineCount, p.Width, p.Height,
		)}
	}
	return nil
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Expert       Difficulty = "expert"
	Master       Difficulty = "master"
	Custom       Difficulty = "custom"
)

var presets = map[Difficulty]GameParams{
	Beginner:     {Width: 8, Height: 8, MineCount: 10},
	Intermediate: {Width: 16, Height: 16, MineCount: 40},
	Expert:       {Width: 30, Height: 16, MineCount: 99},
	Master:       {Width: 30, Height: 30, MineCount: 200},
}

// ParseDifficulty maps an identifier onto the closed difficulty set,
// failing with [ConfigError] on anything unrecognized.
func ParseDifficulty(id string) (Difficulty, error) {
	d := Difficulty(id)
	if _, ok := presets[d]; ok || d == Custom {
		return d, nil
	}
	return "", ConfigError{fmt.Sprintf("unknown difficulty %q", id)}
}

// Params returns the preset board parameters for d. Custom has no preset
// of its own; its parameters live on the session.
func (d Difficulty) Params() (GameParams, bool) {
	p, ok := presets[d]
	return p, ok
}

// Settings are the engine options that survive across games.
type Settings struct {
	// FirstSuccess guarantees the first opened cell and its whole
	// neighborhood are mine-free, deferring minefield generation to the
	// first click.
	FirstSuccess bool `json:"first_success" schema:"first_success"`
	// FlagLevels is the number of flag marker levels a right click
	// cycles through before returning to hidden (1-3).
	FlagLevels int `json:"flag_levels" schema:"flag_levels"`
}

func DefaultSettings() Settings {
	return Settings{FirstSuccess: true, FlagLevels: 2}
}

func (s Settings) Validate() error {
	if s.FlagLevels < 1 || s.FlagLevels > 3 {
		return ConfigError{fmt.Sprintf(
			"flag cycle must have 1 to 3 levels, got %d", s.FlagLevels,
		)}
	}
	return nil
}
