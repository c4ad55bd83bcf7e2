package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DataDir        string
	UseDatabase    bool
	DatabaseURL    string
	DatabaseDriver string
	OutputRoot     string
	BuildCommand   string
	BuildWorkDir   string
	UploadsDir     string
	AdminEmail     string
	AdminPassword  string
}

// ParseFlags builds the configuration from CLI flags with environment
// fallback. A .env file in the working directory is loaded first, so
// dev setups need no exported variables.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	var cfg Config
	var useDB string

	fs := flag.NewFlagSet("atelier", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataDir, "data", "", "Data directory for the embedded store")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database connection string")
	fs.StringVar(&cfg.DatabaseDriver, "t", "", "Database driver (postgres or sqlite)")
	fs.StringVar(&useDB, "use-db", "", "Use the database backend instead of the embedded store")
	fs.StringVar(&cfg.OutputRoot, "output", "", "Root directory for the built static site")
	fs.StringVar(&cfg.BuildCommand, "build-cmd", "", "Command that builds the static site")
	fs.StringVar(&cfg.BuildWorkDir, "build-dir", "", "Working directory for the build command")
	fs.StringVar(&cfg.UploadsDir, "uploads", "", "Directory for uploaded images")
	fs.StringVar(&cfg.AdminEmail, "admin-email", "", "Bootstrap admin email (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Bootstrap admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = envOr("DATA_DIR", "data")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = envOr("DATABASE_DRIVER", "postgres")
	}
	if useDB == "" {
		useDB = os.Getenv("USE_DATABASE")
	}
	cfg.UseDatabase = truthy(useDB)
	if cfg.UseDatabase && cfg.DatabaseURL == "" {
		return Config{}, errors.New("USE_DATABASE is set but no database URL given (use -d or DATABASE_URL)")
	}

	if cfg.OutputRoot == "" {
		cfg.OutputRoot = envOr("OUTPUT_ROOT", "dist")
	}
	if cfg.BuildCommand == "" {
		cfg.BuildCommand = envOr("BUILD_COMMAND", "npm run generate")
	}
	if cfg.BuildWorkDir == "" {
		cfg.BuildWorkDir = envOr("BUILD_WORKDIR", ".")
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = envOr("UPLOADS_DIR", "uploads")
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = envOr("ADMIN_EMAIL", "admin@localhost")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		// main logs a warning when the bootstrap password is the
		// well-known default.
		cfg.AdminPassword = "changeme"
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// truthy mirrors the storage-selection contract: unset or anything
// not recognizably true means false.
func truthy(s string) bool {
	switch s {
	case "1", "t", "T", "true", "TRUE", "True", "yes", "y", "on":
		return true
	}
	return false
}
