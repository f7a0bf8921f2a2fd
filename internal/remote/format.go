package remote

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"
)

// Format renders a listing the way `git ls-remote` prints it: one reference
// per line, HEAD first, then by name.
func Format(refs []*plumbing.Reference) string {
	sorted := sortRefs(refs)

	var b strings.Builder
	for i, ref := range sorted {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ref.String())
	}
	return b.String()
}

func sortRefs(refs []*plumbing.Reference) []*plumbing.Reference {
	sorted := make([]*plumbing.Reference, 0, len(refs))
	for _, ref := range refs {
		if ref != nil {
			sorted = append(sorted, ref)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name(), sorted[j].Name()
		if a == plumbing.HEAD || b == plumbing.HEAD {
			return a == plumbing.HEAD && b != plumbing.HEAD
		}
		return a < b
	})
	return sorted
}

// Summary aggregates a remote listing for status reporting.
type Summary struct {
	Refs      int    `json:"refs"`
	Branches  int    `json:"branches"`
	Tags      int    `json:"tags"`
	Head      string `json:"head,omitempty"`
	LatestTag string `json:"latestTag,omitempty"`
}

// Summarize counts branches and tags and picks the highest semantic-version tag.
// Tags that do not parse as versions are counted but never selected.
func Summarize(refs []*plumbing.Reference) Summary {
	var (
		summary Summary
		latest  *semver.Version
	)

	for _, ref := range refs {
		if ref == nil {
			continue
		}
		name := ref.Name()
		// Peeled entries duplicate annotated tags
		if strings.HasSuffix(string(name), "^{}") {
			continue
		}
		summary.Refs++

		switch {
		case name == plumbing.HEAD:
			if ref.Type() == plumbing.SymbolicReference {
				summary.Head = ref.Target().Short()
			} else {
				summary.Head = ref.Hash().String()
			}
		case name.IsBranch():
			summary.Branches++
		case name.IsTag():
			short := name.Short()
			summary.Tags++
			v, err := semver.NewVersion(short)
			if err != nil {
				continue
			}
			if latest == nil || v.GreaterThan(latest) {
				latest = v
				summary.LatestTag = short
			}
		}
	}

	return summary
}
