package gitutil

// Protocol represents the transport scheme of a git remote.
type Protocol string

const (
	// ProtocolHTTPS represents the smart HTTP protocol over TLS
	ProtocolHTTPS Protocol = "https"
	// ProtocolHTTP represents the smart HTTP protocol without TLS
	ProtocolHTTP Protocol = "http"
	// ProtocolSSH represents ssh:// and scp-like git@host:path remotes
	ProtocolSSH Protocol = "ssh"
	// ProtocolGit represents the native git:// daemon protocol
	ProtocolGit Protocol = "git"
	// ProtocolFile represents local file:// remotes
	ProtocolFile Protocol = "file"
	// ProtocolUnknown is returned when no scheme can be detected
	ProtocolUnknown Protocol = ""
)

// IsHTTP reports whether the protocol is served over HTTP(S).
func (p Protocol) IsHTTP() bool {
	return p == ProtocolHTTPS || p == ProtocolHTTP
}

// Credentials is the username/password pair carried by a subscription.
type Credentials struct {
	Username string
	Password string
}

// Anonymous reports whether no user name was supplied.
func (c Credentials) Anonymous() bool {
	return isBlank(c.Username)
}
