package reminder

import (
	"time"

	"github.com/awhatson15/remindme-bot/models"
)

// Clock выдаёт текущее время и запускает отложенные вызовы.
// Вынесен в интерфейс, чтобы в тестах подменять реальные таймеры.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) models.TimerHandle
}

// SystemClock реализует Clock на основе стандартных таймеров
type SystemClock struct{}

// Now возвращает текущее время
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc запускает fn в отдельной горутине по истечении d
func (SystemClock) AfterFunc(d time.Duration, fn func()) models.TimerHandle {
	return time.AfterFunc(d, fn)
}
