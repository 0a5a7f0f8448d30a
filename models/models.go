package models

import (
	"errors"
	"time"
)

// Ошибки ядра напоминаний
var (
	// ErrNotFound — напоминание с указанным ID не найдено у пользователя
	ErrNotFound = errors.New("напоминание не найдено")
	// ErrPastDeadline — указанное время срабатывания уже прошло
	ErrPastDeadline = errors.New("указанное время уже прошло")
	// ErrDuplicateID — у пользователя уже есть напоминание с таким ID
	// (нарушение внутреннего инварианта, в нормальной работе не возникает)
	ErrDuplicateID = errors.New("напоминание с таким ID уже существует")
)

// TimerHandle представляет запущенную отложенную доставку напоминания.
// Stop отменяет доставку; возвращает false, если она уже сработала
// или уже была отменена.
type TimerHandle interface {
	Stop() bool
}

// Reminder представляет одноразовое отложенное напоминание
type Reminder struct {
	ID        string
	Owner     int64
	FireAt    time.Time
	Text      string
	CreatedAt time.Time

	// Handle владеет отложенной доставкой; используется только
	// планировщиком для отмены
	Handle TimerHandle
}

// EventKind тип события, отправляемого пользователю
type EventKind string

// Возможные виды событий
const (
	EventPrompt          EventKind = "prompt"
	EventValidationError EventKind = "validation_error"
	EventScheduled       EventKind = "scheduled"
	EventFired           EventKind = "fired"
	EventCancelled       EventKind = "cancelled"
	EventEdited          EventKind = "edited"
)

// Payload содержит данные события для отображения пользователю.
// Message заполняется для Prompt и ValidationError, Reminder — для
// событий жизненного цикла напоминания.
type Payload struct {
	Message  string
	Reminder *Reminder
}

// Статусы завершённых напоминаний в истории
const (
	StatusFired     = "fired"
	StatusCancelled = "cancelled"
)

// HistoryRecord представляет запись в истории завершённых напоминаний
type HistoryRecord struct {
	ID         int64
	UserID     int64
	ReminderID string
	Text       string
	FireAt     time.Time
	Status     string
	CreatedAt  time.Time
}
