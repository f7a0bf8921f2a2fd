package gitutil

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// AuthMethod returns the go-git authentication for the remote URL.
// Anonymous credentials yield nil so public repositories are listed without auth.
func AuthMethod(remoteURL string, creds Credentials) transport.AuthMethod {
	if creds.Anonymous() {
		return nil
	}

	switch DetectProtocol(remoteURL) {
	case ProtocolSSH:
		return &ssh.Password{
			User:     creds.Username,
			Password: creds.Password,
		}
	case ProtocolGit, ProtocolFile:
		// Neither transport carries credentials
		return nil
	default:
		return &http.BasicAuth{
			Username: creds.Username,
			Password: creds.Password,
		}
	}
}
