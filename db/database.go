package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/awhatson15/remindme-bot/models"
)

// DB представляет экземпляр базы данных истории напоминаний.
// Ожидающие напоминания живут только в памяти; в базу попадают лишь
// завершённые — сработавшие и отменённые.
type DB struct {
	*sql.DB
}

// NewDB инициализирует соединение с базой данных
func NewDB(dbPath string) (*DB, error) {
	// Создаем директорию для БД, если она не существует
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для БД: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	return &DB{db}, nil
}

// InitSchema инициализирует схему базы данных
func (db *DB) InitSchema() error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		reminder_id TEXT NOT NULL,
		text TEXT NOT NULL,
		fire_at TIMESTAMP NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу history: %w", err)
	}

	log.Println("Схема базы данных успешно инициализирована")
	return nil
}

// AddRecord добавляет завершённое напоминание в историю
func (db *DB) AddRecord(owner int64, r *models.Reminder, status string) error {
	_, err := db.Exec(
		"INSERT INTO history (user_id, reminder_id, text, fire_at, status) VALUES (?, ?, ?, ?, ?)",
		owner, r.ID, r.Text, r.FireAt, status,
	)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении записи в историю: %w", err)
	}
	return nil
}

// GetHistoryByUser возвращает последние записи истории пользователя,
// новые первыми
func (db *DB) GetHistoryByUser(userID int64, limit int) ([]*models.HistoryRecord, error) {
	rows, err := db.Query(
		"SELECT id, user_id, reminder_id, text, fire_at, status, created_at FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории пользователя: %w", err)
	}
	defer rows.Close()

	records := []*models.HistoryRecord{}
	for rows.Next() {
		record := &models.HistoryRecord{}
		err := rows.Scan(
			&record.ID, &record.UserID, &record.ReminderID,
			&record.Text, &record.FireAt, &record.Status, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи истории: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по записям истории: %w", err)
	}

	return records, nil
}
