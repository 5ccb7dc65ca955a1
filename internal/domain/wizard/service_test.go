package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-health-assessment/internal/domain/assessment"
	"pet-health-assessment/internal/platform/clock"
	"pet-health-assessment/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu         sync.Mutex
	byID       map[string]Session
	saves      int
	fail       error
	failDelete error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Session{}}
}

func (r *testRepo) Save(_ context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.saves++
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteIdle(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.byID {
		if s.UpdatedAt.Before(before) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *testRepo) stored(id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok
}

// blockingRepo frena el primer Save del paso 4 hasta que el test cierra release.
type blockingRepo struct {
	*testRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingRepo() *blockingRepo {
	return &blockingRepo{
		testRepo: newTestRepo(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (r *blockingRepo) Save(ctx context.Context, s Session) error {
	if s.State.Step == StepResults {
		r.once.Do(func() {
			close(r.entered)
			<-r.release
		})
	}
	return r.testRepo.Save(ctx, s)
}

// -------------------------
// Tests
// -------------------------

func newManualService(t *testing.T) (*Service, *testRepo, *clock.Manual) {
	t.Helper()
	repo := newTestRepo()
	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(repo, ServiceOptions{Clock: clk, Logger: logger.NewTest(t)})
	t.Cleanup(svc.Shutdown)
	return svc, repo, clk
}

func TestService_FullFlow_PersistsCompletion(t *testing.T) {
	svc, repo, clk := newManualService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)
	require.Equal(t, StepVisual, s.State.Step)

	_, err = svc.Next(ctx, s.ID)
	require.ErrorIs(t, err, ErrImageRequired)

	_, err = svc.AttachImage(ctx, s.ID, ImageRef{Filename: "a.jpg", ContentType: "image/jpeg", Size: 10})
	require.NoError(t, err)

	s, err = svc.Next(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, StepBehavior, s.State.Step)
	require.NotEmpty(t, s.State.Image.ID)

	_, err = svc.SetMetrics(ctx, s.ID, assessment.Metrics{Energy: 1, Appetite: 1, Mood: 1})
	require.NoError(t, err)
	for _, o := range assessment.SymptomObservations() {
		_, err = svc.ToggleObservation(ctx, s.ID, o)
		require.NoError(t, err)
	}

	s, err = svc.Next(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, StepProcessing, s.State.Step)

	_, err = svc.Result(ctx, s.ID)
	require.ErrorIs(t, err, ErrResultNotReady)

	clk.Advance(5 * time.Second)

	stored, ok := repo.stored(s.ID)
	require.True(t, ok)
	assert.Equal(t, StepResults, stored.State.Step, "timer-driven completion must be persisted")

	res, err := svc.Result(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 84, res.Score)
	assert.Equal(t, assessment.LevelHigh, res.Level)
}

func TestService_RestoresFromRepoAfterShutdown(t *testing.T) {
	repo := newTestRepo()
	clk := clock.NewManual(time.Time{})
	ctx := context.Background()

	first := NewService(repo, ServiceOptions{Clock: clk})
	s, err := first.Create(ctx)
	require.NoError(t, err)
	_, err = first.AttachImage(ctx, s.ID, ImageRef{ContentType: "image/png"})
	require.NoError(t, err)
	_, err = first.Next(ctx, s.ID)
	require.NoError(t, err)
	_, err = first.Next(ctx, s.ID)
	require.NoError(t, err)
	clk.Advance(time.Second)
	first.Shutdown()
	require.Equal(t, 0, clk.Pending())

	second := NewService(repo, ServiceOptions{Clock: clk})
	defer second.Shutdown()

	got, err := second.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepProcessing, got.State.Step)
	assert.Equal(t, 0, got.State.Progress)
	assert.Equal(t, s.CreatedAt, got.CreatedAt)

	clk.Advance(5 * time.Second)
	got, err = second.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepResults, got.State.Step)
}

func TestService_UnknownSession(t *testing.T) {
	svc, _, _ := newManualService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, svc.Close(ctx, "nope"), ErrNotFound)
}

func TestService_CloseDisposesAndDeletes(t *testing.T) {
	svc, repo, clk := newManualService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)
	_, _ = svc.AttachImage(ctx, s.ID, ImageRef{ContentType: "image/png"})
	_, _ = svc.Next(ctx, s.ID)
	_, _ = svc.Next(ctx, s.ID)
	require.Equal(t, 2, clk.Pending())

	require.NoError(t, svc.Close(ctx, s.ID))
	assert.Equal(t, 0, clk.Pending())
	_, ok := repo.stored(s.ID)
	assert.False(t, ok)

	_, err = svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SaveFailureSurfaces(t *testing.T) {
	svc, repo, _ := newManualService(t)
	repo.fail = errors.New("db down")

	_, err := svc.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestService_EvictIdle(t *testing.T) {
	svc, repo, clk := newManualService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	assert.Equal(t, 0, svc.EvictIdle(2*time.Hour))
	clk.Advance(2 * time.Hour)
	assert.Equal(t, 1, svc.EvictIdle(2*time.Hour))

	// el snapshot sigue y se restaura
	_, ok := repo.stored(s.ID)
	require.True(t, ok)
	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepVisual, got.State.Step)
}

func TestService_RealClock_NoLeakedTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	fast := Timings{
		ProgressInterval: time.Millisecond,
		ProgressStep:     25,
		StatusInterval:   2 * time.Millisecond,
		GraceDelay:       time.Millisecond,
	}
	svc := NewService(newTestRepo(), ServiceOptions{Timings: &fast})
	ctx := context.Background()

	done, err := svc.Create(ctx)
	require.NoError(t, err)
	_, _ = svc.AttachImage(ctx, done.ID, ImageRef{ContentType: "image/png"})
	_, _ = svc.Next(ctx, done.ID)
	_, err = svc.Next(ctx, done.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s, err := svc.Get(ctx, done.ID)
		return err == nil && s.State.Step == StepResults
	}, 2*time.Second, 5*time.Millisecond)

	// otra sesión queda a mitad de procesamiento y se corta por Shutdown
	slow := Timings{ProgressInterval: time.Hour, ProgressStep: 5, StatusInterval: time.Hour, GraceDelay: time.Hour}
	svc2 := NewService(newTestRepo(), ServiceOptions{Timings: &slow})
	mid, err := svc2.Create(ctx)
	require.NoError(t, err)
	_, _ = svc2.AttachImage(ctx, mid.ID, ImageRef{ContentType: "image/png"})
	_, _ = svc2.Next(ctx, mid.ID)
	_, err = svc2.Next(ctx, mid.ID)
	require.NoError(t, err)

	svc.Shutdown()
	svc2.Shutdown()
}

func startProcessing(t *testing.T, svc *Service) Session {
	t.Helper()
	ctx := context.Background()
	s, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.AttachImage(ctx, s.ID, ImageRef{ContentType: "image/png"})
	require.NoError(t, err)
	_, err = svc.Next(ctx, s.ID)
	require.NoError(t, err)
	s, err = svc.Next(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, StepProcessing, s.State.Step)
	return s
}

func TestService_RestartWaitsForCompletionSave(t *testing.T) {
	repo := newBlockingRepo()
	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(repo, ServiceOptions{Clock: clk, Logger: logger.NewTest(t)})
	t.Cleanup(svc.Shutdown)
	ctx := context.Background()

	s := startProcessing(t, svc)

	advanced := make(chan struct{})
	go func() {
		clk.Advance(10 * time.Second)
		close(advanced)
	}()
	<-repo.entered

	restarted := make(chan error, 1)
	go func() {
		_, err := svc.Restart(ctx, s.ID)
		restarted <- err
	}()

	select {
	case err := <-restarted:
		t.Fatalf("restart returned while the completion save was still pending (err=%v)", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	<-advanced
	require.NoError(t, <-restarted)

	live, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	stored, ok := repo.stored(s.ID)
	require.True(t, ok)
	assert.Equal(t, StepVisual, live.State.Step)
	assert.Equal(t, StepVisual, stored.State.Step, "the stale step-4 snapshot must not overwrite the restart")
}

func TestService_CloseDuringCompletionSaveLeavesNoSnapshot(t *testing.T) {
	repo := newBlockingRepo()
	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(repo, ServiceOptions{Clock: clk, Logger: logger.NewTest(t)})
	t.Cleanup(svc.Shutdown)
	ctx := context.Background()

	s := startProcessing(t, svc)

	advanced := make(chan struct{})
	go func() {
		clk.Advance(10 * time.Second)
		close(advanced)
	}()
	<-repo.entered

	closed := make(chan error, 1)
	go func() { closed <- svc.Close(ctx, s.ID) }()
	time.Sleep(20 * time.Millisecond)

	close(repo.release)
	<-advanced
	require.NoError(t, <-closed)

	_, ok := repo.stored(s.ID)
	assert.False(t, ok)
}

func TestService_GetReportsLastMutation(t *testing.T) {
	svc, repo, clk := newManualService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	changed, err := svc.AttachImage(ctx, s.ID, ImageRef{ContentType: "image/png"})
	require.NoError(t, err)
	clk.Advance(5 * time.Minute)

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, changed.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, s.CreatedAt.Add(time.Minute), got.UpdatedAt)

	// también después de restaurar desde el repo
	svc.Shutdown()
	got, err = svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, changed.UpdatedAt, got.UpdatedAt)

	stored, _ := repo.stored(s.ID)
	assert.Equal(t, stored.UpdatedAt, got.UpdatedAt)
}

func TestService_ExpireDropsStaleSessions(t *testing.T) {
	svc, repo, clk := newManualService(t)
	ctx := context.Background()

	old, err := svc.Create(ctx)
	require.NoError(t, err)
	clk.Advance(90 * time.Minute)
	fresh, err := svc.Create(ctx)
	require.NoError(t, err)
	clk.Advance(time.Hour)

	// leer no renueva la expiración
	_, err = svc.Get(ctx, old.ID)
	require.NoError(t, err)

	n, err := svc.Expire(ctx, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok := repo.stored(old.ID)
	assert.False(t, ok)
	_, err = svc.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// controller desalojado antes: el snapshot igual expira
	assert.Equal(t, 1, svc.EvictIdle(time.Minute))
	clk.Advance(2 * time.Hour)
	n, err = svc.Expire(ctx, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = svc.Get(ctx, fresh.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err = svc.Expire(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_CloseSurfacesDeleteFailure(t *testing.T) {
	svc, repo, _ := newManualService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	repo.failDelete = errors.New("db down")
	err = svc.Close(ctx, s.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
