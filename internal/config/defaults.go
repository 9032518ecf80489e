package config

import "rollcall/internal/classify"

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			RosterDB: "~/.local/share/rollcall/rosters.db",
		},
		Rosters: Rosters{
			Primary: Roster{
				Label:    "primary",
				Expected: "auto",
			},
			Secondary: Roster{
				Label:    "secondary",
				Expected: "any",
			},
		},
		Matching: Matching{
			ColumnMatchThreshold: classify.DefaultThreshold,
			SuggestionLimit:      5,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
