package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		UI
		Sessions
		RateLimit
		Audit
		Global
	}

	HTTP struct {
		Port int32  `validate:"min=1,max=65535"`
		Host string `validate:"required"`
	}
	Database struct {
		Path         string `validate:"required"`
		SessionsPath string `validate:"required"`
	}
	UI struct {
		TemplatesPath string `validate:"required"`
		StaticPath    string `validate:"required"`
	}
	Sessions struct {
		Secret        string // hex-encoded; auto-generated at startup when empty
		Lifetime      time.Duration
		SecureCookies bool // set to false for local dev without HTTPS
	}
	RateLimit struct {
		Enabled bool
		RPS     float64 `validate:"min=0"`
		Burst   int     `validate:"min=0"`
	}
	Audit struct {
		RecentLimit   int    `validate:"min=1"` // events shown on the dashboard
		RetentionDays int    `validate:"min=1"` // days to keep audit events
		PruneSchedule string `validate:"required"` // cron expression for the prune job
	}
	Global struct {
		ShutdownTimeoutInSeconds int `validate:"min=0"`
		Debug                    bool
	}
)

func NewConfig() (*Config, error) {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("debug", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("sessions_database_path", DefaultSessionsDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Session defaults
	v.SetDefault("session_secret", "") // auto-generated if empty
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_rps", 2.0)
	v.SetDefault("rate_limit_burst", 4)

	// Audit trail defaults
	v.SetDefault("audit_recent_limit", 10)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_prune_schedule", "0 3 * * *") // daily at 03:00

	cfg := &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_PATH"),
			SessionsPath: v.GetString("SESSIONS_DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Sessions: Sessions{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		RateLimit: RateLimit{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
		Audit: Audit{
			RecentLimit:   v.GetInt("AUDIT_RECENT_LIMIT"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			PruneSchedule: v.GetString("AUDIT_PRUNE_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Debug:                    v.GetBool("DEBUG"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the assembled configuration and reports the first
// nonsensical value, so a bad environment fails at startup.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config: %s failed %q validation", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	return nil
}
