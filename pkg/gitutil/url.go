package gitutil

import (
	"net/url"
	"strings"
)

// JoinRepositoryURL appends the repository name to the server base URL,
// adding the separating slash when the base does not already end with one.
func JoinRepositoryURL(base, repository string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + repository
}

// EnsureTrailingSlash returns the URL with exactly the trailing slash the
// admin index expects.
func EnsureTrailingSlash(raw string) string {
	if strings.HasSuffix(raw, "/") {
		return raw
	}
	return raw + "/"
}

// DetectProtocol returns the protocol of a remote URL.
// Handles:
// - https://host/repo.git and http://host/repo.git
// - ssh://user@host/repo.git and git@host:repo.git
// - git://host/repo.git
// - file:///path/to/repo
func DetectProtocol(raw string) Protocol {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(lower, "https://"):
		return ProtocolHTTPS
	case strings.HasPrefix(lower, "http://"):
		return ProtocolHTTP
	case strings.HasPrefix(lower, "ssh://"), strings.HasPrefix(lower, "git+ssh://"):
		return ProtocolSSH
	case strings.HasPrefix(lower, "git://"):
		return ProtocolGit
	case strings.HasPrefix(lower, "file://"):
		return ProtocolFile
	}

	// scp-like syntax: user@host:path, without a scheme
	if at := strings.Index(raw, "@"); at > 0 {
		if colon := strings.Index(raw[at:], ":"); colon > 1 {
			return ProtocolSSH
		}
	}

	return ProtocolUnknown
}

// IsHTTPURL reports whether the URL uses http or https.
func IsHTTPURL(raw string) bool {
	return DetectProtocol(raw).IsHTTP()
}

// RedactURL removes any password embedded in the URL so it can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// ExtractRepoName extracts the repository name from a git URL or path.
func ExtractRepoName(repo string) string {
	repo = strings.TrimSpace(repo)
	repo = strings.TrimSuffix(repo, "/")
	repo = strings.TrimSuffix(repo, ".git")
	if idx := strings.LastIndexAny(repo, "/:"); idx >= 0 {
		return repo[idx+1:]
	}
	return repo
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
