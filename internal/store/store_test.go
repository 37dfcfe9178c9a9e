package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/password"
)

type recordingObserver struct {
	mu   sync.Mutex
	ops  []string
	errs int
}

func (o *recordingObserver) ObserveStorage(op, key string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op+":"+key)
	if err != nil {
		o.errs++
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.Memory) {
	t.Helper()
	medium := kv.NewMemory()
	hasher := password.NewHasher(bcrypt.MinCost)
	opts = append([]Option{WithSeed(func() (*seed.Dataset, error) { return seed.Load(hasher) })}, opts...)
	return New(medium, opts...), medium
}

func TestReadAllAbsentKeyIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	users, err := ReadAll[models.User](context.Background(), s, KeyUsers)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestReadAllCorruptValue(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	for _, raw := range []string{`{not json`, `{"id":"x"}`, `null`} {
		require.NoError(t, medium.Set(ctx, string(KeyProgrammes), []byte(raw)))

		_, err := ReadAll[models.Programme](ctx, s, KeyProgrammes)
		var corrupt *CorruptDataError
		require.True(t, errors.As(err, &corrupt), raw)
		assert.Equal(t, KeyProgrammes, corrupt.Key)
	}
}

func TestWriteAllThenReadAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := []models.Session{{ID: "session-x", ProgrammeID: "prog-1", Date: "2024-02-05"}}
	require.NoError(t, WriteAll(ctx, s, KeySessions, in))

	out, err := ReadAll[models.Session](ctx, s, KeySessions)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out[0].Title = "changed"
	again, err := ReadAll[models.Session](ctx, s, KeySessions)
	require.NoError(t, err)
	assert.Empty(t, again[0].Title)
}

func TestInitializeIfAbsentSeedsOnce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.InitializeIfAbsent(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	users, err := ReadAll[models.User](ctx, s, KeyUsers)
	require.NoError(t, err)
	require.Len(t, users, 10)

	require.NoError(t, WriteAll(ctx, s, KeyUsers, users[:1]))

	seeded, err = s.InitializeIfAbsent(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	users, err = ReadAll[models.User](ctx, s, KeyUsers)
	require.NoError(t, err)
	assert.Len(t, users, 1, "sentinel set, collections left alone")
}

func TestInitializeWithSentinelAndNoCollections(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, string(KeyInitialized), []byte("true")))

	seeded, err := s.InitializeIfAbsent(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	programmes, err := ReadAll[models.Programme](ctx, s, KeyProgrammes)
	require.NoError(t, err)
	assert.Empty(t, programmes)
}

func TestResetRestoresSeedAndClearsSession(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	_, err := s.InitializeIfAbsent(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, &models.User{ID: "admin-1"}))
	require.NoError(t, medium.Set(ctx, string(KeyEnrollments), []byte(`garbage`)))

	require.NoError(t, s.Reset(ctx))

	enrollments, err := ReadAll[models.Enrollment](ctx, s, KeyEnrollments)
	require.NoError(t, err)
	assert.Len(t, enrollments, 8)

	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserSlot(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, s.SetCurrentUser(ctx, &models.User{ID: "trainer-1", Role: models.RoleTrainer}))
	user, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "trainer-1", user.ID)

	require.NoError(t, s.SetCurrentUser(ctx, nil))
	user, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, medium.Set(ctx, string(KeyCurrentUser), []byte(`[`)))
	_, err = s.CurrentUser(ctx)
	var corrupt *CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}

func TestClockAndToday(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("WAT", 3600))
	s, _ := newTestStore(t, WithClock(func() time.Time { return fixed }))

	assert.Equal(t, time.UTC, s.Now().Location())
	assert.Equal(t, "2024-03-01", s.Today())
}

func TestObserverSeesOperations(t *testing.T) {
	obs := &recordingObserver{}
	s, _ := newTestStore(t, WithObserver(obs))
	ctx := context.Background()

	_, err := ReadAll[models.User](ctx, s, KeyUsers)
	require.NoError(t, err)
	require.NoError(t, WriteAll(ctx, s, KeyUsers, []models.User{}))

	assert.Equal(t, []string{"get:dtmms_users", "set:dtmms_users"}, obs.ops)
	assert.Zero(t, obs.errs, "a missing key is not an error")
}

func TestObserverSeesCorruptDecode(t *testing.T) {
	obs := &recordingObserver{}
	s, medium := newTestStore(t, WithObserver(obs))
	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, string(KeyMessages), []byte(`"oops"`)))

	_, err := ReadAll[models.Message](ctx, s, KeyMessages)
	require.Error(t, err)

	assert.Equal(t, []string{"get:dtmms_messages", "decode:dtmms_messages"}, obs.ops)
	assert.Equal(t, 1, obs.errs)
}

type brokenMedium struct{ kv.Memory }

func (*brokenMedium) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestCountsAfterSeed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, err := s.InitializeIfAbsent(ctx)
	require.NoError(t, err)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"users": 10, "programmes": 5, "sessions": 5, "enrollments": 8,
		"attendance": 9, "mentorships": 5, "mentorshipNotes": 4,
		"evaluations": 3, "materials": 4, "messages": 3, "notifications": 4,
	}, counts)
}

func TestCountsSurfacesCorruptCollection(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, string(KeyMaterials), []byte(`"x"`)))

	_, err := s.Counts(ctx)
	var corrupt *CorruptDataError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, KeyMaterials, corrupt.Key)
}

func TestPing(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))

	broken := New(&brokenMedium{})
	assert.Error(t, broken.Ping(context.Background()))
}
