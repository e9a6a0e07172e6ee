// Package testutil carries the shared test fixtures: a throwaway sqlite
// database wired into the global handle and a recording mail transport.
package testutil

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"projectvote/pkg/db/postgres"
)

// SetupDB opens a fresh sqlite database in a temp dir, migrates the full
// schema and installs it as the global handle the repositories use.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "projectvote.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	postgres.SetDB(db)

	return db
}

type Message struct {
	To      []string
	Subject string
	Body    string
}

// RecordingMailer captures every message instead of delivering it. Safe
// for the dispatcher's concurrent fan-out.
type RecordingMailer struct {
	mu       sync.Mutex
	messages []Message
}

func (m *RecordingMailer) Send(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{To: append([]string(nil), to...), Subject: subject, Body: body})
	return nil
}

func (m *RecordingMailer) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

// SubjectCount counts captured messages whose subject starts with prefix.
func (m *RecordingMailer) SubjectCount(prefix string) int {
	count := 0
	for _, msg := range m.Messages() {
		if strings.HasPrefix(msg.Subject, prefix) {
			count++
		}
	}
	return count
}

func (m *RecordingMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
