// Package store persists whole entity collections as JSON arrays in a
// key-value medium.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/password"
)

// Key names one stored collection or slot.
type Key string

const (
	KeyUsers           Key = "dtmms_users"
	KeyProgrammes      Key = "dtmms_programmes"
	KeySessions        Key = "dtmms_sessions"
	KeyEnrollments     Key = "dtmms_enrollments"
	KeyAttendance      Key = "dtmms_attendance"
	KeyMentorships     Key = "dtmms_mentorships"
	KeyMentorshipNotes Key = "dtmms_mentorship_notes"
	KeyEvaluations     Key = "dtmms_evaluations"
	KeyMaterials       Key = "dtmms_materials"
	KeyMessages        Key = "dtmms_messages"
	KeyNotifications   Key = "dtmms_notifications"
	KeyCurrentUser     Key = "dtmms_current_user"
	KeyInitialized     Key = "dtmms_initialized"
)

// Keys lists every key the store owns.
func Keys() []Key {
	return []Key{
		KeyUsers, KeyProgrammes, KeySessions, KeyEnrollments, KeyAttendance,
		KeyMentorships, KeyMentorshipNotes, KeyEvaluations, KeyMaterials,
		KeyMessages, KeyNotifications, KeyCurrentUser, KeyInitialized,
	}
}

// CorruptDataError reports a stored value that does not decode into the
// expected shape.
type CorruptDataError struct {
	Key Key
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data under %s: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// Observer receives one callback per medium operation.
type Observer interface {
	ObserveStorage(op string, key string, duration time.Duration, err error)
}

// SeedFunc produces the dataset written by InitializeIfAbsent.
type SeedFunc func() (*seed.Dataset, error)

// Store is the single entry point to persisted state. Reads are not
// serialised; read-modify-write cycles must run inside Locked.
type Store struct {
	medium   kv.Medium
	seed     SeedFunc
	now      func() time.Time
	observer Observer
	logger   *zap.Logger

	mu sync.Mutex
}

type Option func(*Store)

func WithSeed(fn SeedFunc) Option {
	return func(s *Store) { s.seed = fn }
}

// WithClock overrides the clock used for creation timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New wraps medium. Without WithSeed the embedded demo dataset is used with
// bcrypt at its default cost.
func New(medium kv.Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == nil {
		hasher := password.NewHasher(0)
		s.seed = func() (*seed.Dataset, error) { return seed.Load(hasher) }
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Now is the store clock in UTC.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

// Today is the store clock's calendar date as YYYY-MM-DD.
func (s *Store) Today() string {
	return s.Now().Format("2006-01-02")
}

// Locked runs fn while holding the write lock. It is not reentrant.
func (s *Store) Locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Close releases the underlying medium.
func (s *Store) Close() error {
	return s.medium.Close()
}

func (s *Store) get(ctx context.Context, key Key) ([]byte, error) {
	start := time.Now()
	raw, err := s.medium.Get(ctx, string(key))
	s.observe("get", key, start, err)
	return raw, err
}

func (s *Store) set(ctx context.Context, key Key, value []byte) error {
	start := time.Now()
	err := s.medium.Set(ctx, string(key), value)
	s.observe("set", key, start, err)
	return err
}

func (s *Store) del(ctx context.Context, key Key) error {
	start := time.Now()
	err := s.medium.Delete(ctx, string(key))
	s.observe("delete", key, start, err)
	return err
}

func (s *Store) observe(op string, key Key, start time.Time, err error) {
	if s.observer == nil {
		return
	}
	if errors.Is(err, kv.ErrNotFound) {
		err = nil
	}
	s.observer.ObserveStorage(op, string(key), time.Since(start), err)
}

// ReadAll decodes the collection under key. An absent key yields an empty
// slice; a value that is not a JSON array of T yields *CorruptDataError.
func ReadAll[T any](ctx context.Context, s *Store, key Key) ([]T, error) {
	raw, err := s.get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	start := time.Now()
	var items []T
	err = json.Unmarshal(raw, &items)
	if err == nil && items == nil {
		// a stored JSON null
		err = errors.New("value is not an array")
	}
	if err != nil {
		corrupt := &CorruptDataError{Key: key, Err: err}
		s.observe("decode", key, start, corrupt)
		return nil, corrupt
	}
	return items, nil
}

// WriteAll replaces the whole collection under key.
func WriteAll[T any](ctx context.Context, s *Store, key Key, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// InitializeIfAbsent writes the seed dataset unless the initialized
// sentinel is already set. Existing collections are never inspected.
func (s *Store) InitializeIfAbsent(ctx context.Context) (bool, error) {
	var seeded bool
	err := s.Locked(func() error {
		var err error
		seeded, err = s.initializeLocked(ctx)
		return err
	})
	return seeded, err
}

// Reset deletes every key the store owns and seeds again.
func (s *Store) Reset(ctx context.Context) error {
	return s.Locked(func() error {
		for _, key := range Keys() {
			if err := s.del(ctx, key); err != nil {
				return fmt.Errorf("reset %s: %w", key, err)
			}
		}
		_, err := s.initializeLocked(ctx)
		return err
	})
}

func (s *Store) initializeLocked(ctx context.Context) (bool, error) {
	_, err := s.get(ctx, KeyInitialized)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return false, fmt.Errorf("read %s: %w", KeyInitialized, err)
	}

	ds, err := s.seed()
	if err != nil {
		return false, fmt.Errorf("load seed: %w", err)
	}

	writes := []func() error{
		func() error { return WriteAll(ctx, s, KeyUsers, ds.Users) },
		func() error { return WriteAll(ctx, s, KeyProgrammes, ds.Programmes) },
		func() error { return WriteAll(ctx, s, KeySessions, ds.Sessions) },
		func() error { return WriteAll(ctx, s, KeyEnrollments, ds.Enrollments) },
		func() error { return WriteAll(ctx, s, KeyAttendance, ds.Attendance) },
		func() error { return WriteAll(ctx, s, KeyMentorships, ds.Mentorships) },
		func() error { return WriteAll(ctx, s, KeyMentorshipNotes, ds.MentorshipNotes) },
		func() error { return WriteAll(ctx, s, KeyEvaluations, ds.Evaluations) },
		func() error { return WriteAll(ctx, s, KeyMaterials, ds.Materials) },
		func() error { return WriteAll(ctx, s, KeyMessages, ds.Messages) },
		func() error { return WriteAll(ctx, s, KeyNotifications, ds.Notifications) },
	}
	for _, write := range writes {
		if err := write(); err != nil {
			return false, err
		}
	}

	if err := s.set(ctx, KeyInitialized, []byte("true")); err != nil {
		return false, fmt.Errorf("write %s: %w", KeyInitialized, err)
	}

	s.logger.Info("store seeded", zap.Any("counts", ds.Counts()))
	return true, nil
}

// CurrentUser returns the session user, or nil when nobody is signed in.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.get(ctx, KeyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	}

	var user *models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, &CorruptDataError{Key: KeyCurrentUser, Err: err}
	}
	return user, nil
}

// SetCurrentUser stores user as the session user; nil clears the slot.
func (s *Store) SetCurrentUser(ctx context.Context, user *models.User) error {
	if user == nil {
		if err := s.del(ctx, KeyCurrentUser); err != nil {
			return fmt.Errorf("clear %s: %w", KeyCurrentUser, err)
		}
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentUser, err)
	}
	if err := s.set(ctx, KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("write %s: %w", KeyCurrentUser, err)
	}
	return nil
}

// collectionNames pairs each collection key with the name used in counts.
var collectionNames = []struct {
	key  Key
	name string
}{
	{KeyUsers, "users"},
	{KeyProgrammes, "programmes"},
	{KeySessions, "sessions"},
	{KeyEnrollments, "enrollments"},
	{KeyAttendance, "attendance"},
	{KeyMentorships, "mentorships"},
	{KeyMentorshipNotes, "mentorshipNotes"},
	{KeyEvaluations, "evaluations"},
	{KeyMaterials, "materials"},
	{KeyMessages, "messages"},
	{KeyNotifications, "notifications"},
}

// Counts returns the number of records per collection.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(collectionNames))
	for _, c := range collectionNames {
		items, err := ReadAll[json.RawMessage](ctx, s, c.key)
		if err != nil {
			return nil, err
		}
		counts[c.name] = len(items)
	}
	return counts, nil
}

// Ping checks that the medium answers.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.get(ctx, KeyInitialized)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("ping medium: %w", err)
	}
	return nil
}
