// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"io"
	"runtime"
)

var (
	// Version is the released version, set with -X github.com/goliatone/gitscm/pkg/version.Version=v1.2.3
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Print writes the build metadata in a human readable form.
func Print(w io.Writer) error {
	info := Get()
	_, err := fmt.Fprintf(w, "gitscm %s\n  commit: %s\n  built:  %s\n  go:     %s %s\n",
		info.Version, info.Commit, info.Date, info.GoVersion, info.Platform)
	return err
}
