package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"rollcall/internal/resolve"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file location configuration.
type Paths struct {
	RosterDB string `toml:"roster_db"`
}

// Roster configures matching policy for one roster role.
type Roster struct {
	// Label is the human-facing roster name used in reasons and output
	// (for example "students"). Defaults to the role name.
	Label string `toml:"label"`
	// Unique disqualifies identities matched by more than one row.
	Unique bool `toml:"unique"`
	// Expected is the per-row expected count: "any", "at-least-one",
	// "auto", or a non-negative integer.
	Expected string `toml:"expected"`
}

// Rosters holds both roles' policies.
type Rosters struct {
	Primary   Roster `toml:"primary"`
	Secondary Roster `toml:"secondary"`
}

// Matching contains classification and suggestion tuning.
type Matching struct {
	// ColumnMatchThreshold is the fraction of a column's non-empty cells
	// that must resolve to known identity values before the column is
	// treated as an identity column.
	ColumnMatchThreshold float64 `toml:"column_match_threshold"`
	// SuggestionLimit caps how many ranked candidates the CLI displays per
	// roster for an unmatched row. Zero shows all of them.
	SuggestionLimit int `toml:"suggestion_limit"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for rollcall.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Rosters  Rosters  `toml:"rosters"`
	Matching Matching `toml:"matching"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rollcall/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found; without one the defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("rollcall.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Policy converts the configured roster sections into an engine policy.
// Validate has already checked the count specifiers, so parse errors here
// indicate the config was mutated after validation.
func (c *Config) Policy() (resolve.Policy, error) {
	primary, err := resolve.ParseCountSpec(c.Rosters.Primary.Expected)
	if err != nil {
		return resolve.Policy{}, fmt.Errorf("primary roster: %w", err)
	}
	secondary, err := resolve.ParseCountSpec(c.Rosters.Secondary.Expected)
	if err != nil {
		return resolve.Policy{}, fmt.Errorf("secondary roster: %w", err)
	}
	return resolve.Policy{
		Primary:   resolve.RosterPolicy{Expected: primary, UniqueOnce: c.Rosters.Primary.Unique},
		Secondary: resolve.RosterPolicy{Expected: secondary, UniqueOnce: c.Rosters.Secondary.Unique},
	}, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
