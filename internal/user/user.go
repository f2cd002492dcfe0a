// Package user resolves the name of the person running lanes
package user

import (
	"os"
	"os/user"
)

// CurrentUsername returns the name boards default to when no owner is
// configured. It tries, in order: the USER environment variable, the OS
// account name, then "default".
func CurrentUsername() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if current, err := user.Current(); err == nil && current.Username != "" {
		return current.Username
	}
	return "default"
}
