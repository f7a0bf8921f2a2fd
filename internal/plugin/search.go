package plugin

import (
	"context"
	"fmt"

	"github.com/goliatone/gitscm/internal/admin"
	"github.com/goliatone/gitscm/pkg/gitutil"
)

// FindAllByName lists the repositories of a node whose name contains
// criteria, ignoring case, ordered by name and capped by the search limit.
func (r *Resource) FindAllByName(ctx context.Context, node, criteria string) ([]NamedBean, error) {
	params, err := r.store.NodeParameters(node)
	if err != nil {
		return nil, fmt.Errorf("plugin: load node %s: %w", node, err)
	}

	idx, err := r.fetchIndex(ctx, params)
	if err != nil {
		url := params[ParameterURL]
		r.logger.Error("Git repository search failed", "node", node, "url", gitutil.RedactURL(url), "error", err)
		return nil, adminError(url, err)
	}

	names := idx.Search(criteria, r.config.SearchLimit)
	beans := make([]NamedBean, 0, len(names))
	for _, entry := range names {
		// Bare repositories keep their .git suffix in the ID only
		beans = append(beans, NamedBean{ID: entry, Name: gitutil.ExtractRepoName(entry)})
	}

	r.logger.Debug("Git repositories searched", "node", node, "criteria", criteria, "matches", len(beans))
	return beans, nil
}

// fetchIndex loads and parses the admin index of the server.
func (r *Resource) fetchIndex(ctx context.Context, params Parameters) (admin.Index, error) {
	req := admin.Request{
		URL:                gitutil.EnsureTrailingSlash(params[ParameterURL]),
		InsecureSkipVerify: !r.sslVerify(),
	}
	if user := params[ParameterUser]; !isBlank(user) {
		req.Username = user
		req.Password = params[ParameterPassword]
	}

	page, err := r.fetcher.Fetch(ctx, req)
	if err != nil {
		return admin.Index{}, err
	}

	idx := admin.ParseIndex(page)
	if !idx.Valid() {
		return admin.Index{}, admin.ErrInvalidIndex
	}
	return idx, nil
}
