package reminder

import (
	"sync"

	"github.com/awhatson15/remindme-bot/models"
)

// Store хранит ожидающие напоминания по пользователям.
// Напоминания хранятся только в памяти и теряются при перезапуске
// процесса. Все операции безопасны при конкурентном доступе.
type Store struct {
	mu        sync.RWMutex
	reminders map[int64][]*models.Reminder
}

// NewStore создает новое хранилище напоминаний
func NewStore() *Store {
	return &Store{
		reminders: make(map[int64][]*models.Reminder),
	}
}

// Add добавляет напоминание в конец списка пользователя.
// Возвращает ErrDuplicateID, если напоминание с таким ID уже есть.
func (s *Store) Add(owner int64, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reminders[owner] {
		if existing.ID == r.ID {
			return models.ErrDuplicateID
		}
	}

	s.reminders[owner] = append(s.reminders[owner], r)
	return nil
}

// Remove удаляет напоминание пользователя и возвращает его.
// Возвращает ErrNotFound, если напоминания нет.
func (s *Store) Remove(owner int64, id string) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reminders[owner]
	for i, r := range list {
		if r.ID == id {
			s.reminders[owner] = append(list[:i], list[i+1:]...)
			if len(s.reminders[owner]) == 0 {
				delete(s.reminders, owner)
			}
			return r, nil
		}
	}

	return nil, models.ErrNotFound
}

// Find возвращает напоминание пользователя по ID
func (s *Store) Find(owner int64, id string) (*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reminders[owner] {
		if r.ID == id {
			return r, nil
		}
	}

	return nil, models.ErrNotFound
}

// Replace заменяет напоминание с указанным ID, сохраняя его позицию
// в списке пользователя
func (s *Store) Replace(owner int64, id string, newReminder *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reminders[owner] {
		if r.ID == id {
			s.reminders[owner][i] = newReminder
			return nil
		}
	}

	return models.ErrNotFound
}

// List возвращает копию списка ожидающих напоминаний пользователя
// в порядке создания
func (s *Store) List(owner int64) []*models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.reminders[owner]
	snapshot := make([]*models.Reminder, len(list))
	copy(snapshot, list)
	return snapshot
}

// Owners возвращает пользователей, у которых есть ожидающие напоминания
func (s *Store) Owners() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]int64, 0, len(s.reminders))
	for owner := range s.reminders {
		owners = append(owners, owner)
	}
	return owners
}
