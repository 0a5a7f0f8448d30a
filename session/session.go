package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/awhatson15/remindme-bot/models"
	"github.com/awhatson15/remindme-bot/reminder"
	"github.com/awhatson15/remindme-bot/utils"
)

// Mode режим диалога: создание нового напоминания или правка существующего
type Mode string

// Возможные режимы диалога
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State шаг диалога
type State string

// Возможные шаги диалога
const (
	StateDate State = "date"
	StateTime State = "time"
	StateText State = "text"
)

// Session хранит состояние пошагового диалога с пользователем:
// дата → время → текст. Поля заполняются по мере прохождения шагов.
type Session struct {
	Owner int64
	Mode  Mode
	State State

	Date   time.Time
	Hour   int
	Minute int

	// TargetID — ID правимого напоминания (только в режиме правки)
	TargetID string
}

// Manager ведёт диалоги пользователей. На пользователя активен не более
// одного диалога; запуск нового молча заменяет текущий.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	service  *reminder.Service
	notifier reminder.Notifier
	clock    reminder.Clock
}

// NewManager создает новый менеджер диалогов
func NewManager(service *reminder.Service, notifier reminder.Notifier, clock reminder.Clock) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		service:  service,
		notifier: notifier,
		clock:    clock,
	}
}

// StartCreate начинает диалог создания напоминания
func (m *Manager) StartCreate(owner int64) {
	m.mu.Lock()
	m.sessions[owner] = &Session{
		Owner: owner,
		Mode:  ModeCreate,
		State: StateDate,
	}
	m.mu.Unlock()

	m.notifier.Notify(owner, models.EventPrompt, models.Payload{
		Message: "📅 На какую дату напомнить? Введите «сегодня», «завтра» или дату в формате ДД.ММ.ГГГГ:",
	})
}

// StartEdit начинает диалог правки напоминания. Возвращает ErrNotFound,
// если напоминания с таким ID у пользователя нет.
func (m *Manager) StartEdit(owner int64, id string) error {
	if _, err := m.service.Get(owner, id); err != nil {
		m.notifier.Notify(owner, models.EventValidationError, models.Payload{
			Message: "Напоминание не найдено — возможно, оно уже сработало или было отменено.",
		})
		return err
	}

	m.mu.Lock()
	m.sessions[owner] = &Session{
		Owner:    owner,
		Mode:     ModeEdit,
		State:    StateDate,
		TargetID: id,
	}
	m.mu.Unlock()

	m.notifier.Notify(owner, models.EventPrompt, models.Payload{
		Message: "📅 Введите новую дату: «сегодня», «завтра» или ДД.ММ.ГГГГ:",
	})
	return nil
}

// Abort прерывает активный диалог. Возвращает false, если диалога нет.
func (m *Manager) Abort(owner int64) bool {
	m.mu.Lock()
	_, exists := m.sessions[owner]
	delete(m.sessions, owner)
	m.mu.Unlock()

	return exists
}

// Active сообщает, ведётся ли сейчас диалог с пользователем
func (m *Manager) Active(owner int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.sessions[owner]
	return exists
}

// Submit передаёт очередную реплику пользователя в активный диалог.
// Возвращает false, если диалога нет и ввод не обработан. Невалидный
// ввод не продвигает диалог: пользователю отправляется ошибка, и тот же
// шаг запрашивается снова. Состояние меняется под блокировкой, но
// планировщик и доставка уведомлений вызываются уже после её
// освобождения: сетевая отправка одного пользователя не должна
// задерживать диалоги остальных.
func (m *Manager) Submit(owner int64, raw string) bool {
	m.mu.Lock()
	s, exists := m.sessions[owner]
	if !exists {
		m.mu.Unlock()
		return false
	}

	switch s.State {
	case StateDate:
		date, err := utils.ParseDate(raw, m.clock.Now())
		if err != nil {
			m.mu.Unlock()
			m.notifyInvalid(owner, fmt.Sprintf("%s. Попробуйте ещё раз:", err))
			return true
		}
		s.Date = date
		s.State = StateTime
		m.mu.Unlock()
		m.notifier.Notify(owner, models.EventPrompt, models.Payload{
			Message: "🕒 Во сколько? Введите время в формате ЧЧ:ММ:",
		})

	case StateTime:
		hour, minute, err := utils.ParseTime(raw)
		if err != nil {
			m.mu.Unlock()
			m.notifyInvalid(owner, fmt.Sprintf("%s. Попробуйте ещё раз:", err))
			return true
		}
		s.Hour = hour
		s.Minute = minute
		s.State = StateText
		m.mu.Unlock()
		m.notifier.Notify(owner, models.EventPrompt, models.Payload{
			Message: "✍️ О чём напомнить? Введите текст напоминания:",
		})

	case StateText:
		text := strings.TrimSpace(raw)
		if text == "" {
			m.mu.Unlock()
			m.notifyInvalid(owner, "Текст напоминания не может быть пустым. Введите текст:")
			return true
		}
		fireAt := utils.CombineDateTime(s.Date, s.Hour, s.Minute)
		m.mu.Unlock()
		m.finish(s, fireAt, text)

	default:
		m.mu.Unlock()
	}

	return true
}

// finish выполняет завершающий шаг диалога. Уведомление об успехе
// строится из напоминания, возвращённого планировщиком: искать его в
// хранилище нельзя, оно могло уже сработать.
func (m *Manager) finish(s *Session, fireAt time.Time, text string) {
	var (
		r    *models.Reminder
		kind models.EventKind
		err  error
	)

	switch s.Mode {
	case ModeCreate:
		r, err = m.service.Schedule(s.Owner, fireAt, text)
		kind = models.EventScheduled
	case ModeEdit:
		r, err = m.service.Edit(s.Owner, s.TargetID, fireAt, text)
		kind = models.EventEdited
	}

	if err != nil {
		m.reportScheduleError(s, err)
		return
	}

	m.clear(s)
	m.notifier.Notify(s.Owner, kind, models.Payload{Reminder: r})
}

// clear завершает диалог, только если он всё ещё текущий: пользователь
// мог тем временем начать новый
func (m *Manager) clear(s *Session) {
	m.mu.Lock()
	if m.sessions[s.Owner] == s {
		delete(m.sessions, s.Owner)
	}
	m.mu.Unlock()
}

func (m *Manager) notifyInvalid(owner int64, message string) {
	m.notifier.Notify(owner, models.EventValidationError, models.Payload{Message: message})
}

// reportScheduleError сообщает об ошибке завершающего шага. При
// ErrPastDeadline диалог не сбрасывается: пользователь остаётся на шаге
// текста и может начать заново командой. Исчезнувшее во время правки
// напоминание завершает диалог.
func (m *Manager) reportScheduleError(s *Session, err error) {
	switch {
	case errors.Is(err, models.ErrPastDeadline):
		m.notifyInvalid(s.Owner, "Указанные дата и время уже прошли. Начните заново командой /new.")
	case errors.Is(err, models.ErrNotFound):
		m.clear(s)
		m.notifyInvalid(s.Owner, "Напоминание не найдено — возможно, оно уже сработало.")
	default:
		m.clear(s)
		m.notifyInvalid(s.Owner, "Произошла внутренняя ошибка. Попробуйте ещё раз.")
	}
}
