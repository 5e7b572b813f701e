package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerSettings contains the values a race server reads at startup.
type ServerSettings struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"` // protocol clients must speak, empty for the built-in one
	Port        int    `mapstructure:"port"`
	TickRate    int    `mapstructure:"tickRate"` // simulation ticks per second
	TrackPath   string `mapstructure:"trackPath"`
	GameOptions int    `mapstructure:"gameOptions"`
	Laps        int    `mapstructure:"laps"`
	MaxPlayers  int    `mapstructure:"maxPlayers"`
	LobbyMs     int    `mapstructure:"lobbyMs"`   // wait after the first pilot joins before the countdown
	PregameMs   int    `mapstructure:"pregameMs"` // countdown during which crafts can be cycled
	ResultsMs   int    `mapstructure:"resultsMs"` // standings shown before the server exits

	LogLevel    string `mapstructure:"logLevel"`
	Development bool   `mapstructure:"development"`

	RecordsApp string `mapstructure:"recordsApp"` // gdata application name for best laps
	ReplayDir  string `mapstructure:"replayDir"`  // empty disables replay recording

	// Master server listing, disabled when MasterURL is empty
	MasterURL string `mapstructure:"masterUrl"`
	Address   string `mapstructure:"address"` // host:port advertised to players
	Region    string `mapstructure:"region"`
}

// Options returns the game options byte.
func (s ServerSettings) Options() GameOptions {
	return GameOptions(s.GameOptions)
}

// ErrInvalidSettings is returned when loaded settings cannot run a race.
var ErrInvalidSettings = errors.New("invalid server settings")

// EnvPrefix prefixes environment overrides, e.g. HOVERRACE_PORT.
const EnvPrefix = "HOVERRACE"

// LoadServerSettings reads settings from the YAML file at path, falling back
// to defaults for missing keys. An empty path only applies defaults and
// environment overrides.
func LoadServerSettings(path string) (ServerSettings, error) {
	v := viper.New()

	v.SetDefault("name", "HoverRace Server")
	v.SetDefault("version", "")
	v.SetDefault("port", 8080)
	v.SetDefault("tickRate", 60)
	v.SetDefault("trackPath", "assets/tracks/classic.tmx")
	v.SetDefault("gameOptions", int(OptDefault))
	v.SetDefault("laps", 3)
	v.SetDefault("maxPlayers", 8)
	v.SetDefault("lobbyMs", 10000)
	v.SetDefault("pregameMs", 3000)
	v.SetDefault("resultsMs", 10000)
	v.SetDefault("logLevel", "info")
	v.SetDefault("development", false)
	v.SetDefault("recordsApp", "hoverrace-mp")
	v.SetDefault("replayDir", "")
	v.SetDefault("masterUrl", "")
	v.SetDefault("address", "")
	v.SetDefault("region", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return ServerSettings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s ServerSettings
	if err := v.Unmarshal(&s); err != nil {
		return ServerSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return ServerSettings{}, err
	}
	return s, nil
}

// Validate checks the settings a race cannot start without.
func (s ServerSettings) Validate() error {
	switch {
	case s.TickRate <= 0:
		return fmt.Errorf("%w: tickRate must be positive, got %d", ErrInvalidSettings, s.TickRate)
	case s.Laps <= 0:
		return fmt.Errorf("%w: laps must be positive, got %d", ErrInvalidSettings, s.Laps)
	case s.LobbyMs < 0 || s.PregameMs < 0 || s.ResultsMs < 0:
		return fmt.Errorf("%w: lobby, pregame and results times cannot be negative", ErrInvalidSettings)
	case s.MaxPlayers <= 0:
		return fmt.Errorf("%w: maxPlayers must be positive, got %d", ErrInvalidSettings, s.MaxPlayers)
	case s.GameOptions < 0 || s.GameOptions > 0xff:
		return fmt.Errorf("%w: gameOptions must fit in a byte, got %#x", ErrInvalidSettings, s.GameOptions)
	case s.Options()&OptCraftMask == 0:
		return fmt.Errorf("%w: gameOptions disables every craft", ErrInvalidSettings)
	}
	return nil
}
