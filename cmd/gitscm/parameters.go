package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/gitscm/internal/plugin"
)

// parameterFlags collects subscription parameters from flags, optionally
// seeded from a stored subscription.
type parameterFlags struct {
	subscription int
	url          string
	repository   string
	user         string
	password     string
	index        bool
}

func addParameterFlags(cmd *cobra.Command) *parameterFlags {
	pf := &parameterFlags{}
	flags := cmd.Flags()

	flags.IntVar(&pf.subscription, "subscription", 0,
		"Load parameters from this stored subscription; other flags override them")
	flags.StringVar(&pf.url, "url", "", "Git server base URL")
	flags.StringVar(&pf.repository, "repository", "", "Repository name, appended to the URL")
	flags.StringVar(&pf.user, "user", "", "User name; anonymous access when empty")
	flags.StringVar(&pf.password, "password", "", "Password, only sent with --user")
	flags.BoolVar(&pf.index, "index", false, "Probe the admin index page")

	return pf
}

// resolve merges stored parameters with the flags set on cmd.
func (pf *parameterFlags) resolve(cmd *cobra.Command) (plugin.Parameters, error) {
	params := plugin.Parameters{}

	if pf.subscription > 0 {
		stored, err := container.Store().SubscriptionParameters(pf.subscription)
		if err != nil {
			return nil, classifyError("failed to load subscription "+strconv.Itoa(pf.subscription), err)
		}
		for k, v := range stored {
			params[k] = v
		}
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		params[plugin.ParameterURL] = pf.url
	}
	if flags.Changed("repository") {
		params[plugin.ParameterRepository] = pf.repository
	}
	if flags.Changed("user") {
		params[plugin.ParameterUser] = pf.user
	}
	if flags.Changed("password") {
		params[plugin.ParameterPassword] = pf.password
	}
	if flags.Changed("index") {
		params[plugin.ParameterIndex] = strconv.FormatBool(pf.index)
	}

	if strings.TrimSpace(params[plugin.ParameterURL]) == "" {
		return nil, newUsageError("a server URL is required (--url or --subscription)", nil)
	}
	return params, nil
}

func parseSubscriptionID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, newUsageError("subscription must be a positive integer, got "+strconv.Quote(raw), err)
	}
	return id, nil
}
