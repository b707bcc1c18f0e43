package config

import (
	"github.com/spf13/viper"
)

// Backend selects which storage implementation the process runs on. The
// choice is made once at startup via configuration, not discovered
// dynamically.
type Backend string

const (
	BackendMemory Backend = "memory" // snapshot-committed in-process store
	BackendSQLite Backend = "sqlite" // relational store
)

type (
	Config struct {
		HTTP
		Database
		Session
		UI
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Backend      Backend
		SQLitePath   string // relational backend database file
		SnapshotPath string // snapshot backend backing file
	}
	Session struct {
		Secret        string // CSRF/session key, auto-generated if empty
		SecureCookies bool   // set to false for local dev without HTTPS
	}
	UI struct {
		TemplatesPath       string
		StaticPath          string
		TimezoneOffsetHours int // display offset applied to stored UTC times
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_backend", string(BackendMemory))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("snapshot_path", DefaultSnapshotPath)
	v.SetDefault("session_secret", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("timezone_offset_hours", 3)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Backend:      Backend(v.GetString("DATABASE_BACKEND")),
			SQLitePath:   v.GetString("DATABASE_PATH"),
			SnapshotPath: v.GetString("SNAPSHOT_PATH"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		UI: UI{
			TemplatesPath:       v.GetString("TEMPLATES_PATH"),
			StaticPath:          v.GetString("STATIC_PATH"),
			TimezoneOffsetHours: v.GetInt("TIMEZONE_OFFSET_HOURS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
