package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"projectvote/internal/config"
	"projectvote/internal/models"
)

var db *gorm.DB

func InitDB(cfg config.DatabaseConfig) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=public",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	db = conn

	return Migrate(db)
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Application{},
		&models.VoteRecord{},
		&models.Attachment{},
		&models.VoteReminder{},
	)
}

func GetDB() *gorm.DB {
	return db
}

// SetDB installs an already-open handle. Tests use this to point the
// repositories at a throwaway sqlite database.
func SetDB(conn *gorm.DB) {
	db = conn
}

// IsUniqueViolation reports whether err came from a unique-constraint
// breach, across the postgres and sqlite dialects.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
