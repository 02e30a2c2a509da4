package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGraphSearchLimit sets the maximum number of taxa a single name
// lookup returns.
func OptGraphSearchLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Graph SearchLimit", i) {
			c.Graph.SearchLimit = i
		}
	}
}

// OptGraphCode sets the default nomenclatural code for canonical name
// normalization. Valid values: "zoological", "botanical".
func OptGraphCode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Graph.Code", s) {
			c.Graph.Code = s
		}
	}
}

// OptStorePath sets the path of the SQLite file holding the serialized
// graph.
func OptStorePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Path", s) {
			c.Store.Path = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format. Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parsing and
// matching.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory that anchors config and data
// paths.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
