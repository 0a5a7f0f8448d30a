package reminder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/awhatson15/remindme-bot/models"
)

// Notifier доставляет события пользователю. Реализуется транспортным
// слоем (Telegram); ядро не знает, как события отображаются.
type Notifier interface {
	Notify(owner int64, kind models.EventKind, payload models.Payload)
}

// History принимает записи о завершённых напоминаниях
type History interface {
	AddRecord(owner int64, r *models.Reminder, status string) error
}

// Service управляет жизненным циклом напоминаний: создание, отмена,
// правка и срабатывание. Все переходы сериализуются одним мьютексом,
// поэтому для каждого напоминания пользователь получает ровно одно
// завершающее событие — Fired или Cancelled, даже если отмена и
// срабатывание гонятся друг с другом.
type Service struct {
	mu       sync.Mutex
	store    *Store
	clock    Clock
	notifier Notifier
	history  History
}

// NewService создает новый планировщик напоминаний. history может быть
// nil, тогда завершённые напоминания не записываются.
func NewService(store *Store, clock Clock, notifier Notifier, history History) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		notifier: notifier,
		history:  history,
	}
}

// Schedule создает напоминание и взводит отложенную доставку.
// Возвращает созданное напоминание: к моменту возврата оно уже может
// сработать, поэтому вызывающий не должен искать его в хранилище.
// Возвращает ErrPastDeadline, если fireAt не в будущем.
func (s *Service) Schedule(owner int64, fireAt time.Time, text string) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !fireAt.After(now) {
		return nil, models.ErrPastDeadline
	}

	r := &models.Reminder{
		ID:        uuid.NewString(),
		Owner:     owner,
		FireAt:    fireAt,
		Text:      text,
		CreatedAt: now,
	}
	r.Handle = s.clock.AfterFunc(fireAt.Sub(now), func() {
		s.fire(r)
	})

	if err := s.store.Add(owner, r); err != nil {
		// Коллизия UUID — сбой генерации идентификаторов
		r.Handle.Stop()
		return nil, fmt.Errorf("не удалось сохранить напоминание: %w", err)
	}

	return r, nil
}

// Cancel отменяет ожидающее напоминание и отправляет пользователю
// уведомление об отмене. Возвращает ErrNotFound, если напоминание
// уже сработало или было отменено раньше.
func (s *Service) Cancel(owner int64, id string) error {
	s.mu.Lock()
	r, err := s.store.Find(owner, id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	r.Handle.Stop()
	s.store.Remove(owner, id)
	s.mu.Unlock()

	s.notifier.Notify(owner, models.EventCancelled, models.Payload{Reminder: r})
	s.record(owner, r, models.StatusCancelled)
	return nil
}

// Edit заменяет время и текст напоминания, сохраняя его ID и позицию
// в списке. Старая отложенная доставка снимается без уведомления об
// отмене: правка — не отмена. При ошибке ErrPastDeadline старое
// напоминание остаётся взведённым без изменений. Как и Schedule,
// возвращает обновлённое напоминание.
func (s *Service) Edit(owner int64, id string, newFireAt time.Time, newText string) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.store.Find(owner, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !newFireAt.After(now) {
		return nil, models.ErrPastDeadline
	}

	old.Handle.Stop()

	r := &models.Reminder{
		ID:        id,
		Owner:     owner,
		FireAt:    newFireAt,
		Text:      newText,
		CreatedAt: old.CreatedAt,
	}
	r.Handle = s.clock.AfterFunc(newFireAt.Sub(now), func() {
		s.fire(r)
	})

	if err := s.store.Replace(owner, id, r); err != nil {
		r.Handle.Stop()
		return nil, err
	}

	return r, nil
}

// Get возвращает ожидающее напоминание пользователя по ID
func (s *Service) Get(owner int64, id string) (*models.Reminder, error) {
	return s.store.Find(owner, id)
}

// List возвращает ожидающие напоминания пользователя в порядке создания
func (s *Service) List(owner int64) []*models.Reminder {
	return s.store.List(owner)
}

// Owners возвращает пользователей с ожидающими напоминаниями
func (s *Service) Owners() []int64 {
	return s.store.Owners()
}

// fire вызывается по истечении задержки. Напоминание удаляется и
// уведомление отправляется только если в хранилище лежит именно тот
// экземпляр, для которого взводился таймер: к моменту срабатывания
// напоминание могло быть отменено или заменено правкой.
func (s *Service) fire(r *models.Reminder) {
	s.mu.Lock()
	current, err := s.store.Find(r.Owner, r.ID)
	if err != nil || current != r {
		s.mu.Unlock()
		return
	}
	s.store.Remove(r.Owner, r.ID)
	s.mu.Unlock()

	s.notifier.Notify(r.Owner, models.EventFired, models.Payload{Reminder: r})
	s.record(r.Owner, r, models.StatusFired)
}

func (s *Service) record(owner int64, r *models.Reminder, status string) {
	if s.history == nil {
		return
	}
	if err := s.history.AddRecord(owner, r, status); err != nil {
		log.Printf("Ошибка при записи напоминания %s в историю: %v", r.ID, err)
	}
}
