package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type userRecord struct {
	Identity     entities.Identity
	PasswordHash string
}

// Store is the in-memory user directory used by tests and local runs. It also
// doubles as Clock and IDGenerator, mirroring the postgres adapter surface.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]userRecord
	byEmail  map[string]string
	sequence int
	now      time.Time
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]userRecord),
		byEmail: make(map[string]string),
		now:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("user_mem_%d", s.sequence), nil
}

func (s *Store) FindByID(_ context.Context, userID string) (entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byID[userID]
	if !ok {
		return entities.Identity{}, domainerrors.ErrUserNotFound
	}
	return record.Identity, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return entities.Identity{}, domainerrors.ErrUserNotFound
	}
	return s.byID[userID].Identity, nil
}

func (s *Store) FindCredentialsByEmail(_ context.Context, email string) (ports.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return ports.Credentials{}, domainerrors.ErrUserNotFound
	}
	record := s.byID[userID]
	return ports.Credentials{
		Identity:     record.Identity,
		PasswordHash: record.PasswordHash,
	}, nil
}

func (s *Store) List(_ context.Context) ([]entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Identity, 0, len(s.byID))
	for _, record := range s.byID {
		items = append(items, record.Identity)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Email < items[j].Email
	})
	return items, nil
}

func (s *Store) Create(_ context.Context, input ports.CreateUserInput) (entities.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(input.Email)
	if _, exists := s.byEmail[email]; exists {
		return entities.Identity{}, domainerrors.ErrEmailTaken
	}

	identity := entities.Identity{
		UserID:    input.UserID,
		Email:     email,
		Name:      input.Name,
		Role:      input.Role,
		CreatedAt: input.CreatedAt.UTC(),
		UpdatedAt: input.CreatedAt.UTC(),
	}
	s.byID[input.UserID] = userRecord{
		Identity:     identity,
		PasswordHash: input.PasswordHash,
	}
	s.byEmail[email] = input.UserID
	return identity, nil
}

func (s *Store) UpdateRole(
	_ context.Context,
	userID string,
	role entities.Role,
	updatedAt time.Time,
) (entities.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[userID]
	if !ok {
		return entities.Identity{}, domainerrors.ErrUserNotFound
	}
	record.Identity.Role = role
	record.Identity.UpdatedAt = updatedAt.UTC()
	s.byID[userID] = record
	return record.Identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
