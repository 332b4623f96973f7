// Package config loads typed configuration from environment variables and
// optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//	var cfg schema.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	s := schema.MustNew("signup", schema.WithConfig(cfg), ...)
//
// Load reads the default .env file once per process, parses the environment
// into the struct using `env` and `envDefault` tags and caches the result per
// type: later calls for the same type return the cached copy. ResetCache
// drops the cache, which tests use to reload after changing the environment.
//
// LoadFrom is the uncached variant for explicit files, such as a CLI
// --env-file flag. Variables already present in the process environment take
// precedence over values from files, matching godotenv.Load.
package config
