package identity

import "fmt"

// ConfigError indicates the identities file is missing, unreadable, or
// defines no identities. It is fatal: no model is produced.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("identities config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("identities config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
