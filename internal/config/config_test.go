package config

import (
	"reflect"
	"testing"

	"projectvote/pkg/apperrors"
)

func TestParseBoardMembers(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"a@x.de,b@x.de,c@x.de", []string{"a@x.de", "b@x.de", "c@x.de"}},
		{" a@x.de , b@x.de ", []string{"a@x.de", "b@x.de"}},
		{"a@x.de,,b@x.de,", []string{"a@x.de", "b@x.de"}},
		{"single@x.de", []string{"single@x.de"}},
		{"", nil},
		{" , ,", nil},
	}
	for _, c := range cases {
		if got := ParseBoardMembers(c.raw); !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseBoardMembers(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestLoadRequiresBoardMembers(t *testing.T) {
	t.Setenv("BOARD_MEMBERS", "")
	if _, err := Load(); err != apperrors.ErrNoBoardMembers {
		t.Fatalf("Load() error = %v, want ErrNoBoardMembers", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOARD_MEMBERS", "a@x.de,b@x.de")
	t.Setenv("SEND_REJECTION_EMAIL", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.BoardMembers) != 2 {
		t.Errorf("BoardMembers = %v, want two entries", cfg.BoardMembers)
	}
	if cfg.ServerPort != "8000" {
		t.Errorf("ServerPort = %q, want default 8000", cfg.ServerPort)
	}
	if !cfg.SendRejectionEmail {
		t.Error("SendRejectionEmail should default to true")
	}
	if cfg.Mail.Driver != "console" {
		t.Errorf("Mail.Driver = %q, want default console", cfg.Mail.Driver)
	}
}
