// Package filesystem holds small path helpers shared by the config
// loaders.
package filesystem

import "os"

// UserHomeDir resolves the home directory used for the ~/.yyt settings
// path, falling back to the working directory when it is unknown.
func UserHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
