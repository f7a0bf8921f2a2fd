package di

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/goliatone/gitscm/internal/admin"
	"github.com/goliatone/gitscm/internal/metrics"
	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/pkg/config"
	"github.com/goliatone/gitscm/pkg/version"
)

const (
	productName = "gitscm"
	productURL  = "+https://github.com/goliatone/gitscm"
)

// provideIndexFetcher creates the admin index client, instrumented when
// metrics are enabled.
func provideIndexFetcher(cfg *config.Config, m *metrics.Metrics) plugin.IndexFetcher {
	client := admin.New(admin.Config{
		Timeout:   cfg.Admin.Timeout,
		UserAgent: buildUserAgent(cfg),
	})
	return metrics.InstrumentFetcher(client, m)
}

func buildUserAgent(cfg *config.Config) string {
	if cfg != nil {
		if ua := strings.TrimSpace(cfg.Admin.UserAgent); ua != "" {
			return ua
		}
	}
	return fmt.Sprintf("%s/%s (%s) go/%s %s/%s", productName, version.Version, productURL, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// unwrapFetcher returns the admin client behind an instrumented fetcher.
func unwrapFetcher(f plugin.IndexFetcher) plugin.IndexFetcher {
	if u, ok := f.(interface{ Unwrap() metrics.IndexFetcher }); ok {
		return u.Unwrap()
	}
	return f
}
