package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/awhatson15/remindme-bot/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return database
}

func TestHistoryRoundTrip(t *testing.T) {
	database := newTestDB(t)

	fireAt := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)
	r := &models.Reminder{ID: "abc", Owner: 1, FireAt: fireAt, Text: "купить молоко"}

	if err := database.AddRecord(1, r, models.StatusFired); err != nil {
		t.Fatalf("AddRecord: %v", err)
	}

	records, err := database.GetHistoryByUser(1, 10)
	if err != nil {
		t.Fatalf("GetHistoryByUser: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ожидалась одна запись, получено %d", len(records))
	}

	record := records[0]
	if record.ReminderID != "abc" || record.Text != "купить молоко" || record.Status != models.StatusFired {
		t.Errorf("поля не совпадают: %+v", record)
	}
	if !record.FireAt.Equal(fireAt) {
		t.Errorf("время срабатывания не совпадает: %s != %s", record.FireAt, fireAt)
	}
}

func TestHistoryOrderAndLimit(t *testing.T) {
	database := newTestDB(t)

	for i, text := range []string{"первое", "второе", "третье"} {
		r := &models.Reminder{
			ID:     string(rune('a' + i)),
			Owner:  1,
			FireAt: time.Now().Add(time.Duration(i) * time.Hour),
			Text:   text,
		}
		if err := database.AddRecord(1, r, models.StatusCancelled); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}

	records, err := database.GetHistoryByUser(1, 2)
	if err != nil {
		t.Fatalf("GetHistoryByUser: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("лимит не сработал: %d записей", len(records))
	}
	// Новые записи идут первыми
	if records[0].Text != "третье" || records[1].Text != "второе" {
		t.Errorf("неверный порядок: %s, %s", records[0].Text, records[1].Text)
	}
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	database := newTestDB(t)

	r := &models.Reminder{ID: "a", Owner: 1, FireAt: time.Now(), Text: "x"}
	if err := database.AddRecord(1, r, models.StatusFired); err != nil {
		t.Fatalf("AddRecord: %v", err)
	}

	records, err := database.GetHistoryByUser(2, 10)
	if err != nil {
		t.Fatalf("GetHistoryByUser: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("чужая история не пуста: %d записей", len(records))
	}
}
