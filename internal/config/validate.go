package config

import (
	"fmt"
	"strings"

	"rollcall/internal/resolve"
)

// Validate checks every configured value, returning the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.RosterDB) == "" {
		return fmt.Errorf("paths.roster_db must not be empty")
	}

	if _, err := resolve.ParseCountSpec(c.Rosters.Primary.Expected); err != nil {
		return fmt.Errorf("rosters.primary.expected: %w", err)
	}
	if _, err := resolve.ParseCountSpec(c.Rosters.Secondary.Expected); err != nil {
		return fmt.Errorf("rosters.secondary.expected: %w", err)
	}

	if c.Matching.ColumnMatchThreshold <= 0 || c.Matching.ColumnMatchThreshold > 1 {
		return fmt.Errorf("matching.column_match_threshold must be in (0, 1], got %g", c.Matching.ColumnMatchThreshold)
	}
	if c.Matching.SuggestionLimit < 0 {
		return fmt.Errorf("matching.suggestion_limit must not be negative, got %d", c.Matching.SuggestionLimit)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
