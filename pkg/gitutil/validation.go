package gitutil

import (
	"fmt"
	"strings"
)

// ValidateRepositoryName checks the repository segment appended to the server URL.
// It must be a relative path without traversal or control characters.
func ValidateRepositoryName(name string) error {
	if isBlank(name) {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > 250 {
		return fmt.Errorf("repository name exceeds maximum length of 250 characters")
	}

	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("repository name cannot start with '/'")
	}

	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return fmt.Errorf("repository name cannot contain '..' segments")
		}
	}

	for _, c := range name {
		if c < 32 || c == 127 {
			return fmt.Errorf("repository name cannot contain control characters")
		}
	}

	return nil
}
