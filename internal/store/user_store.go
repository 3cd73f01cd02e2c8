package store

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/models"
)

// memoryUserStore is a slice-backed [UserStore]. Lookups are linear scans.
type memoryUserStore struct {
	users []models.User
}

// NewUserStore returns an empty in-memory [UserStore].
func NewUserStore() UserStore {
	return &memoryUserStore{}
}

func (s *memoryUserStore) FindByPredicate(pred func(models.User) bool) (models.User, bool) {
	if i := s.FindIndexByPredicate(pred); i >= 0 {
		return s.users[i].Clone(), true
	}
	return models.User{}, false
}

func (s *memoryUserStore) FindIndexByPredicate(pred func(models.User) bool) int {
	for i, u := range s.users {
		if pred(u) {
			return i
		}
	}
	return -1
}

func (s *memoryUserStore) FilterByPredicate(pred func(models.User) bool) []models.User {
	result := make([]models.User, 0)
	for _, u := range s.users {
		if pred(u) {
			result = append(result, u.Clone())
		}
	}
	return result
}

func (s *memoryUserStore) Insert(user models.User) {
	s.users = append(s.users, user.Clone())
}

func (s *memoryUserStore) ReplaceAt(index int, user models.User) error {
	if index < 0 || index >= len(s.users) {
		return fmt.Errorf("replace at %d: %w", index, ErrIndexOutOfRange)
	}
	s.users[index] = user.Clone()
	return nil
}

func (s *memoryUserStore) RemoveAt(index int) error {
	if index < 0 || index >= len(s.users) {
		return fmt.Errorf("remove at %d: %w", index, ErrIndexOutOfRange)
	}
	s.users = append(s.users[:index], s.users[index+1:]...)
	return nil
}

func (s *memoryUserStore) Len() int {
	return len(s.users)
}

// ByID matches the record with the given identifier.
func ByID(id string) func(models.User) bool {
	return func(u models.User) bool { return u.ID == id }
}

// ByEmail matches the record with the given e-mail.
func ByEmail(email string) func(models.User) bool {
	return func(u models.User) bool { return u.Email == email }
}

// ByName matches records whose name equals name. An empty name matches every
// record.
func ByName(name string) func(models.User) bool {
	return func(u models.User) bool { return name == "" || u.Name == name }
}
