package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindbuilders/dtmms/internal/repository"
	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/internal/store"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/password"
)

// testClock is a settable clock shared by the store and the services.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store     *store.Store
	medium    *kv.Memory
	repos     *repository.Repositories
	passwords *password.Hasher
	clock     *testClock
}

// newFixture returns repositories over a seeded in-memory store whose clock
// starts at 2024-03-01 12:00 UTC.
func newFixture(t *testing.T, opts ...store.Option) *fixture {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	hasher := password.NewHasher(bcrypt.MinCost)
	medium := kv.NewMemory()
	opts = append([]store.Option{
		store.WithSeed(func() (*seed.Dataset, error) { return seed.Load(hasher) }),
		store.WithClock(clock.Now),
	}, opts...)
	st := store.New(medium, opts...)
	_, err := st.InitializeIfAbsent(context.Background())
	require.NoError(t, err)
	return &fixture{store: st, medium: medium, repos: repository.New(st), passwords: hasher, clock: clock}
}

func (f *fixture) users() *UserService {
	return NewUserService(f.repos.Users, f.passwords, validator.New(), zap.NewNop())
}

func (f *fixture) training() *TrainingService {
	r := f.repos
	return NewTrainingService(r.Programmes, r.Sessions, r.Materials, r.Enrollments, r.Users, validator.New(), zap.NewNop())
}

func (f *fixture) attendance() *AttendanceService {
	return NewAttendanceService(f.repos.Attendance, f.repos.Sessions, validator.New(), zap.NewNop())
}

func (f *fixture) mentorship() *MentorshipService {
	r := f.repos
	return NewMentorshipService(r.Mentorships, r.MentorshipNotes, r.Evaluations, r.Programmes, r.Users, validator.New(), zap.NewNop())
}

func (f *fixture) messaging() *MessagingService {
	return NewMessagingService(f.repos.Messages, f.repos.Notifications, f.repos.Users, validator.New(), zap.NewNop())
}

func (f *fixture) stats() *StatsService {
	r := f.repos
	return NewStatsService(StatsServiceParams{
		Users:       r.Users,
		Programmes:  r.Programmes,
		Sessions:    r.Sessions,
		Enrollments: r.Enrollments,
		Attendance:  r.Attendance,
		Mentorships: r.Mentorships,
		Notes:       r.MentorshipNotes,
		Evaluations: r.Evaluations,
		Materials:   r.Materials,
		Now:         f.clock.Now,
	})
}

func (f *fixture) reports() *ReportService {
	r := f.repos
	return NewReportService(ReportServiceParams{
		Programmes:  r.Programmes,
		Sessions:    r.Sessions,
		Attendance:  r.Attendance,
		Enrollments: r.Enrollments,
		Evaluations: r.Evaluations,
		Users:       r.Users,
	})
}

func assertErrorCode(t *testing.T, err error, want *appErrors.Error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want.Code, appErrors.FromError(err).Code)
}

func ptr[T any](v T) *T { return &v }
