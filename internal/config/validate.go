package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field formats and the settings the selected backend needs.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describe(err)
	}

	switch c.Backend.Kind {
	case BackendSupabase:
		if c.Supabase.URL == "" {
			return errors.New("supabase.url (SUPABASE_URL) is required for the supabase backend")
		}
		if c.Supabase.AnonKey == "" {
			return errors.New("supabase.anon_key (SUPABASE_ANON_KEY) is required for the supabase backend")
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn (DB_DSN) is required for the postgres backend")
		}
	}

	if _, err := c.Server.Location(); err != nil {
		return fmt.Errorf("server.timezone: %w", err)
	}

	return nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
