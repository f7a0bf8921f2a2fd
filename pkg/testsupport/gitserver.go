package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
)

// Ref is a single advertised reference of a fake remote.
type Ref struct {
	Hash string
	Name string
}

// DefaultRefs is a small advertisement with a branch and two version tags.
var DefaultRefs = []Ref{
	{Hash: "6b61c2a0f0d6a2b6a5f0b6d1c8a3e4f5a6b7c8d9", Name: "HEAD"},
	{Hash: "6b61c2a0f0d6a2b6a5f0b6d1c8a3e4f5a6b7c8d9", Name: "refs/heads/master"},
	{Hash: "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c", Name: "refs/heads/develop"},
	{Hash: "a1b2c3d4e5f60718293a4b5c6d7e8f9011223344", Name: "refs/tags/v1.0.0"},
	{Hash: "b1b2c3d4e5f60718293a4b5c6d7e8f9011223344", Name: "refs/tags/v1.2.0"},
}

// GitServer is a smart-HTTP remote answering only the ref advertisement,
// which is all a remote listing needs.
type GitServer struct {
	Repository string
	Refs       []Ref
	Username   string
	Password   string

	requests atomic.Int64
}

// Handler returns the http.Handler serving /<repository>/info/refs.
func (g *GitServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/"+strings.Trim(g.Repository, "/")+"/info/refs", func(w http.ResponseWriter, r *http.Request) {
		g.requests.Add(1)
		if r.URL.Query().Get("service") != "git-upload-pack" {
			http.Error(w, "dumb protocol not supported", http.StatusForbidden)
			return
		}
		if g.Username != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != g.Username || pass != g.Password {
				w.Header().Set("WWW-Authenticate", `Basic realm="git"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		w.Header().Set("Content-Type", "application/x-git-upload-pack-advertisement")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(Advertisement(g.Refs)))
	})
	return mux
}

// Requests returns how many advertisements were requested.
func (g *GitServer) Requests() int64 {
	return g.requests.Load()
}

// NewGitServer starts a plain HTTP fake remote.
func NewGitServer(g *GitServer) *httptest.Server {
	return httptest.NewServer(g.Handler())
}

// NewGitTLSServer starts a fake remote behind a self-signed certificate.
func NewGitTLSServer(g *GitServer) *httptest.Server {
	return httptest.NewTLSServer(g.Handler())
}

// Advertisement encodes refs as a git-upload-pack smart-HTTP advertisement.
func Advertisement(refs []Ref) string {
	var b strings.Builder
	b.WriteString(pktLine("# service=git-upload-pack\n"))
	b.WriteString("0000")

	for i, ref := range refs {
		line := ref.Hash + " " + ref.Name
		if i == 0 {
			caps := "multi_ack ofs-delta side-band-64k no-progress agent=git/2.43.0"
			if head := symrefTarget(refs); head != "" {
				caps += " symref=HEAD:" + head
			}
			line += "\x00" + caps
		}
		b.WriteString(pktLine(line + "\n"))
	}

	b.WriteString("0000")
	return b.String()
}

func symrefTarget(refs []Ref) string {
	var head string
	for _, ref := range refs {
		if ref.Name == "HEAD" {
			head = ref.Hash
		}
	}
	if head == "" {
		return ""
	}
	for _, ref := range refs {
		if ref.Name != "HEAD" && ref.Hash == head && strings.HasPrefix(ref.Name, "refs/heads/") {
			return ref.Name
		}
	}
	return ""
}

func pktLine(payload string) string {
	return fmt.Sprintf("%04x%s", len(payload)+4, payload)
}
