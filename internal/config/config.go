package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
}

func (p PostgresConfig) DbUrl() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName,
	)
}

func (p PostgresConfig) MigrateUrl() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.DbName,
	)
}

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return errors.New("invalid duration")
	}
}

type JwtConfig struct {
	TokenLifetime  Duration `json:"token_lifetime"`
	PrivateKeyPath string   `json:"private_key_path"`
	PublicKeyPath  string   `json:"public_key_path"`
}

// GameConfig is the default engine settings handed to new sessions when
// a client does not override them.
type GameConfig struct {
	Difficulty   string `json:"difficulty"`
	FirstSuccess bool   `json:"first_success"`
	FlagLevels   int    `json:"flag_levels"`
}

func (g GameConfig) Settings() mines.Settings {
	return mines.Settings{
		FirstSuccess: g.FirstSuccess,
		FlagLevels:   g.FlagLevels,
	}
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	Domain   string         `json:"domain"`
	LogPath  string         `json:"log_path"`
	Postgres PostgresConfig `json:"postgres"`
	Jwt      JwtConfig      `json:"jwt"`
	Game     GameConfig     `json:"game"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"domain":             c.Domain,
		"pg_host":            c.Postgres.Host,
		"pg_port":            c.Postgres.Port,
		"pg_user":            c.Postgres.User,
		"pg_db_name":         c.Postgres.DbName,
		"jwt_token_lifetime": c.Jwt.TokenLifetime.Duration.String(),
		"game_difficulty":    c.Game.Difficulty,
		"game_first_success": c.Game.FirstSuccess,
		"game_flag_levels":   c.Game.FlagLevels,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) HttpCookieSameSite() http.SameSite {
	if c.Development() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func ReadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, config); err != nil {
		return err
	}
	if config.Game.Difficulty == "" {
		config.Game.Difficulty = string(mines.Beginner)
	}
	if config.Game.FlagLevels == 0 {
		defaults := mines.DefaultSettings()
		config.Game.FlagLevels = defaults.FlagLevels
		config.Game.FirstSuccess = defaults.FirstSuccess
	}
	if _, err := mines.ParseDifficulty(config.Game.Difficulty); err != nil {
		return err
	}
	return config.Game.Settings().Validate()
}
