package repositories

import (
	"context"
	"delivery-tracking-bot/internal/ports"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSQLMessageLogRequiresDB(t *testing.T) {
	log := NewSQLMessageLog(nil)

	err := log.Record(context.Background(), ports.MessageLogEntry{ReceivedAt: time.Now()})
	if err == nil {
		t.Fatal("expected error for nil DB")
	}
}

func TestInitSchemaRequiresDB(t *testing.T) {
	if err := InitSchema(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil DB")
	}
}

func TestTruncateUTF8(t *testing.T) {
	if got := truncateUTF8("hello", 10); got != "hello" {
		t.Fatalf("short string changed: %q", got)
	}

	s := strings.Repeat("🚚", 10) // 4 bytes each
	got := truncateUTF8(s, 6)
	if got != "🚚" {
		t.Fatalf("truncate = %q, want one rune", got)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated string is not valid UTF-8")
	}
}
