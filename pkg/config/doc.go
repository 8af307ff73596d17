// Package config loads sigkit configuration from the environment.
//
// A .env file in the working directory is read first with
// github.com/joho/godotenv, then github.com/caarlos0/env/v11 fills a struct
// from its field tags. Load caches one value per type for the life of the
// process; Parse skips the cache and Reset clears it, which tests use.
//
//	var cfg config.Config
//	config.MustLoad(&cfg)
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//	l := cfg.Logger()
//
// Errors are sentinels (ErrParsingConfig, ErrLoadingEnvFile, ErrNilPointer,
// ErrInvalidValue) joined with the underlying cause.
package config
