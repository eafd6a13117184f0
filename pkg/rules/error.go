package rules

import "fmt"

// ConfigError is a problem with a variant definition
// Configuration errors are fatal: a game cannot be played with the variant
type ConfigError struct {
	Variant string
	Field   string
	Reason  string
	Err     error
}

func (c *ConfigError) Error() string {
	variant := c.Variant
	if variant == "" {
		variant = "unnamed variant"
	}

	if c.Field == "" {
		return fmt.Sprintf("%s: %s", variant, c.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", variant, c.Field, c.Reason)
}

// Unwrap returns the underlying error, if any
func (c *ConfigError) Unwrap() error {
	return c.Err
}

func configError(variant, field, format string, a ...interface{}) *ConfigError {
	return &ConfigError{
		Variant: variant,
		Field:   field,
		Reason:  fmt.Sprintf(format, a...),
	}
}
