package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/tools/kvstore"
	"github.com/google/uuid"
)

const DefaultTTL = 24 * time.Hour

var ErrNotFound = errors.New("search session not found")

// State is what the search page hands over to the results and detail pages.
type State struct {
	Criteria    rules.FilterCriteria `json:"criteria"`
	PickupDate  rules.Date           `json:"pickupDate"`
	DropoffDate rules.Date           `json:"dropoffDate"`
}

func (s State) DateRange() rules.DateRange {
	return rules.DateRange{Pickup: s.PickupDate, Dropoff: s.DropoffDate}
}

// Validate rejects inconsistent criteria and inverted date ranges. Missing
// dates are allowed while the user is still searching.
func (s State) Validate() error {
	if err := s.Criteria.Validate(); err != nil {
		return err
	}

	if _, err := rules.DurationDays(s.PickupDate, s.DropoffDate); err != nil {
		return err
	}

	return nil
}

type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	State
}

type Store interface {
	Create(ctx context.Context, state State) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, id string, state State) (Session, error)
	Delete(ctx context.Context, id string) error
}

// CurrentTimeFunc and NewIDFunc can be mocked for testing.
var (
	CurrentTimeFunc = time.Now
	NewIDFunc       = uuid.NewString
)

type redisStore struct {
	kv           *kvstore.Store
	destinations *rules.DestinationSet
	ttl          time.Duration
}

// NewRedisStore keeps sessions under session:<id>. Every write refreshes the
// expiry.
func NewRedisStore(kv *kvstore.Store, destinations *rules.DestinationSet, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &redisStore{
		kv:           kv,
		destinations: destinations,
		ttl:          ttl,
	}
}

func Key(id string) string {
	return "session:" + id
}

func (s *redisStore) Create(ctx context.Context, state State) (Session, error) {
	if err := state.Validate(); err != nil {
		return Session{}, err
	}

	now := CurrentTimeFunc().UTC()
	session := Session{
		ID:        NewIDFunc(),
		CreatedAt: now,
		UpdatedAt: now,
		State:     s.normalize(state),
	}

	if err := s.kv.Store(ctx, Key(session.ID), session, s.ttl); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (Session, error) {
	var session Session
	found, err := s.kv.Fetch(ctx, Key(id), &session)
	if err != nil {
		return Session{}, fmt.Errorf("fetch session: %w", err)
	}
	if !found {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return session, nil
}

func (s *redisStore) Update(ctx context.Context, id string, state State) (Session, error) {
	if err := state.Validate(); err != nil {
		return Session{}, err
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}

	session.State = s.normalize(state)
	session.UpdatedAt = CurrentTimeFunc().UTC()

	if err := s.kv.Store(ctx, Key(session.ID), session, s.ttl); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.kv.Delete(ctx, Key(id))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// normalize switches the 4x4 requirement on for destinations that need it.
func (s *redisStore) normalize(state State) State {
	state.Criteria = rules.ApplyDestination(state.Criteria, s.destinations)
	return state
}
