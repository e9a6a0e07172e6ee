package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"projectvote/pkg/apperrors"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MailConfig struct {
	// Driver is "smtp" or "console".
	Driver   string
	Server   string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	StartTLS bool
}

type Config struct {
	// BoardMembers defines B for every application submitted while this
	// process runs. The list is snapshotted onto each application at
	// creation; resolution never re-reads it.
	BoardMembers []string

	Database DatabaseConfig
	Redis    RedisConfig
	Mail     MailConfig

	ServerPort  string
	FrontendURL string
	UploadDir   string

	// SendRejectionEmail gates the applicant's rejection notification.
	// Board members are always notified of the final decision.
	SendRejectionEmail bool

	// ReminderAfterHours schedules a single reminder round that many hours
	// after submission. Zero disables reminders.
	ReminderAfterHours int
}

// Load reads .env (if present) and assembles the configuration from the
// environment. It fails only on settings the core cannot run without.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	members := ParseBoardMembers(os.Getenv("BOARD_MEMBERS"))
	if len(members) == 0 {
		return nil, apperrors.ErrNoBoardMembers
	}

	cfg := &Config{
		BoardMembers: members,
		Database: DatabaseConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getenv("SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Mail: MailConfig{
			Driver:   getenv("MAIL_DRIVER", "console"),
			Server:   getenv("MAIL_SERVER", "localhost"),
			Port:     getenvInt("MAIL_PORT", 1025),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     getenv("MAIL_FROM", "noreply@example.com"),
			FromName: getenv("MAIL_FROM_NAME", "ProjectVote"),
			StartTLS: getenvBool("MAIL_STARTTLS", false),
		},
		ServerPort:         getenv("SERVER_PORT", "8000"),
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:5173"),
		UploadDir:          getenv("UPLOAD_DIR", "data/uploads"),
		SendRejectionEmail: getenvBool("SEND_REJECTION_EMAIL", true),
		ReminderAfterHours: getenvInt("REMINDER_AFTER_HOURS", 0),
	}

	return cfg, nil
}

// ParseBoardMembers splits the comma-separated BOARD_MEMBERS value,
// trimming whitespace and dropping empty entries.
func ParseBoardMembers(raw string) []string {
	var members []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.TrimSpace(part)
		if email != "" {
			members = append(members, email)
		}
	}
	return members
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warnf("invalid %s value %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warnf("invalid %s value %q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
