package config

import "strings"

func (c *Config) normalize() error {
	expanded, err := expandPath(strings.TrimSpace(c.Paths.RosterDB))
	if err != nil {
		return err
	}
	c.Paths.RosterDB = expanded

	c.Rosters.Primary.Label = strings.TrimSpace(c.Rosters.Primary.Label)
	c.Rosters.Secondary.Label = strings.TrimSpace(c.Rosters.Secondary.Label)
	c.Rosters.Primary.Expected = strings.TrimSpace(c.Rosters.Primary.Expected)
	c.Rosters.Secondary.Expected = strings.TrimSpace(c.Rosters.Secondary.Expected)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}
