package config

// setGitSSLVerify records an explicit ssl verification value from a configuration source.
func (c *Config) setGitSSLVerify(value bool) {
	if c == nil {
		return
	}
	c.Git.SSLVerify = value
	c.setFlags.gitSSLVerify = true
}

func (c *Config) gitSSLVerifySet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.gitSSLVerify
}

// setLoggingVerbose records an explicit verbose flag value from configuration.
func (c *Config) setLoggingVerbose(value bool) {
	if c == nil {
		return
	}
	c.Logging.Verbose = value
	c.setFlags.loggingVerbose = true
}

func (c *Config) loggingVerboseSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingVerbose
}

// setLoggingQuiet records an explicit quiet flag value from configuration.
func (c *Config) setLoggingQuiet(value bool) {
	if c == nil {
		return
	}
	c.Logging.Quiet = value
	c.setFlags.loggingQuiet = true
}

func (c *Config) loggingQuietSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingQuiet
}

// SetSSLVerifyForTest allows tests to simulate an explicit ssl_verify setting.
func (c *Config) SetSSLVerifyForTest(value bool) {
	c.setGitSSLVerify(value)
}
