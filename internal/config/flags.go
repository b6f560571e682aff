package config

import "flag"

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   store backend: memory | file | postgres | s3
//	-d string   data directory for the file backend and cookie jar
//	-dsn string PostgreSQL DSN for the postgres backend
//	-fast       disable the simulated network latency
//
// Args are filtered to the flags handled here so the JSON stage's -c/-config
// flags pass through untouched.
func parseFlags(cfg *Config) {
	args := filterArgs(osArgs(), "-s", "-d", "-dsn", "-fast")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "store backend: memory | file | postgres | s3")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.BoolVar(&cfg.FastMode, "fast", cfg.FastMode, "disable simulated latency")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
