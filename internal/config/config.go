package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMongo = "mongo"
	BackendFile  = "file"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Reminders RemindersConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// StoreConfig selects the persistence backend for the application document.
type StoreConfig struct {
	Backend      string // mongo | file
	DataFilePath string // file backend only
	SettleMillis int    // flush settle window
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// RemindersConfig holds the credit follow-up job settings. WebhookURL empty
// disables the job.
type RemindersConfig struct {
	CronSchedule string
	Timezone     string
	WebhookURL   string
	WindowHours  int
}

// SheetsConfig contains configuration required to export summaries to Google
// Sheets. Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			CORSOrigins: splitCSV(getenvWithDefault("CORS_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:      getenvWithDefault("STORE_BACKEND", BackendMongo),
			DataFilePath: getenvWithDefault("DATA_FILE_PATH", "data/agripoulet.json"),
			SettleMillis: getenvIntWithDefault("STORE_SETTLE_MS", 300),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "agripoulet"),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			ExpirationHours: getenvIntWithDefault("JWT_EXP_HOURS", 12),
			Issuer:          getenvWithDefault("JWT_ISSUER", "agripoulet"),
		},
		Reminders: RemindersConfig{
			CronSchedule: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
			WebhookURL:   os.Getenv("REMINDER_WEBHOOK_URL"),
			WindowHours:  getenvIntWithDefault("REMINDER_WINDOW_HOURS", 48),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORE_BACKEND=mongo")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case BackendFile:
		if c.Store.DataFilePath == "" {
			return errors.New("DATA_FILE_PATH must be provided when STORE_BACKEND=file")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendMongo, BackendFile)
	}

	if c.Store.SettleMillis < 0 {
		return errors.New("STORE_SETTLE_MS must not be negative")
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.JWT.ExpirationHours <= 0 {
		return errors.New("JWT_EXP_HOURS must be positive")
	}

	if c.Reminders.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}
	if c.Reminders.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if c.Reminders.WindowHours <= 0 {
		return errors.New("REMINDER_WINDOW_HOURS must be positive")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
