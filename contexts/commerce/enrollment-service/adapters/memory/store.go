package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

// Store is the in-memory enrollment adapter used by tests and local runs. It
// doubles as Clock and IDGenerator, mirroring the postgres adapter surface.
type Store struct {
	mu          sync.RWMutex
	byPair      map[string]entities.Enrollment
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
	eventDedup  map[string]string
	sequence    int
	now         time.Time
}

func NewStore() *Store {
	return &Store{
		byPair:     make(map[string]entities.Enrollment),
		outbox:     make(map[string]ports.OutboxMessage),
		outboxSent: make(map[string]time.Time),
		eventDedup: make(map[string]string),
		now:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
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
	return fmt.Sprintf("enr_mem_%d", s.sequence), nil
}

func (s *Store) CreateEnrollmentWithOutbox(
	_ context.Context,
	enrollment entities.Enrollment,
	event ports.ActivatedEvent,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(enrollment.UserID, enrollment.CourseID)
	if _, exists := s.byPair[key]; exists {
		return false, nil
	}

	data, err := json.Marshal(map[string]string{
		"enrollment_id": event.EnrollmentID,
		"user_id":       event.UserID,
		"course_id":     event.CourseID,
		"course_slug":   event.CourseSlug,
	})
	if err != nil {
		return false, err
	}
	envelope := ports.EventEnvelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    "enrollment-service",
		SchemaVersion:    1,
		PartitionKeyPath: "course_id",
		PartitionKey:     event.PartitionKey,
		Data:             data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return false, err
	}

	s.byPair[key] = enrollment
	s.outbox[event.EventID] = ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, event.EventID)
	return true, nil
}

func (s *Store) GetEnrollment(_ context.Context, userID string, courseID string) (entities.Enrollment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enrollment, ok := s.byPair[pairKey(userID, courseID)]
	if !ok {
		return entities.Enrollment{}, false, nil
	}
	return enrollment, true, nil
}

func (s *Store) ListEnrollmentsByUser(_ context.Context, userID string) ([]entities.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Enrollment, 0)
	for _, enrollment := range s.byPair {
		if enrollment.UserID == userID {
			items = append(items, enrollment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, outboxID := range s.outboxOrder {
		if _, sent := s.outboxSent[outboxID]; sent {
			continue
		}
		items = append(items, s.outbox[outboxID])
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrEnrollmentNotFound
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.eventDedup[eventID]
	if !ok {
		s.eventDedup[eventID] = payloadHash
		return false, nil
	}
	if existing != payloadHash {
		return false, domainerrors.ErrDuplicateActivatedEvent
	}
	return true, nil
}

// OutboxSize reports total outbox rows, sent or pending, for test assertions.
func (s *Store) OutboxSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outboxOrder)
}

func pairKey(userID, courseID string) string {
	return userID + "/" + courseID
}
