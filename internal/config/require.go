package config

import (
	"fmt"
	"log"
	"strings"
)

// Missing returns the env names of required settings that are empty, in a
// fixed order.
func (c Config) Missing() []string {
	required := []struct {
		env string
		set bool
	}{
		{"APP_AUTH_URL", c.AuthURL != ""},
		{"APP_HASH_ID", c.AppID != ""},
		{"APP_JWT_SECRET", len(c.JWTSecret) > 0},
		{"DATABASE_URL", c.DatabaseURL != ""},
	}

	var missing []string
	for _, r := range required {
		if !r.set {
			missing = append(missing, r.env)
		}
	}
	return missing
}

// Validate reports every missing required setting in one error.
func (c Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MustBeValid aborts startup when a required setting is absent.
func (c Config) MustBeValid() {
	if err := c.Validate(); err != nil {
		log.Fatal(err)
	}
}
