package config

import (
	"fmt"
	"regexp"
)

// environmentNameRegex validates environment names.
// Both multipass and LXD require a leading letter, allow only letters,
// digits and hyphens, and reject a trailing hyphen. 63 characters is the
// hostname label limit the guests inherit.
var environmentNameRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// ValidateEnvironmentName checks if an environment name is valid.
func ValidateEnvironmentName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name cannot be empty")
	}

	if !environmentNameRegex.MatchString(name) {
		return fmt.Errorf("invalid environment name %q: must start with a letter, contain only letters, digits, or hyphens, not end with a hyphen, and be at most 63 characters", name)
	}

	return nil
}
