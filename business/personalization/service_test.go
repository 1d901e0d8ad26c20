//go:build !integration

package personalization

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"myStorefront/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	snaps   map[uint]domain.SessionSnapshot
	saveErr error
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{snaps: map[uint]domain.SessionSnapshot{}}
}

func (f *fakeStore) LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snaps[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (f *fakeStore) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snaps[snap.UserID] = snap
	return nil
}

func (f *fakeStore) DeleteSnapshot(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snaps, userID)
	return nil
}

func TestService_RecordActionPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: t0}
	store := newFakeStore()

	svc := NewService(store, DefaultConfig(), clock.Now)
	env := domain.SessionContext{Device: "desktop"}
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		if _, err := svc.RecordAction(ctx, 1, env, domain.ActionInput{Type: domain.ActionView, Category: "shoes"}); err != nil {
			t.Fatal(err)
		}
	}
	if store.saves != 3 {
		t.Fatalf("saves = %d, want 3", store.saves)
	}

	// a fresh process picks the session back up from the store
	other := NewService(store, DefaultConfig(), clock.Now)
	prefs, err := other.GetPreferences(ctx, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(prefs.Categories["shoes"], 0.3) {
		t.Fatalf("restored shoes = %v, want 0.3", prefs.Categories["shoes"])
	}
}

func TestService_SaveFailureDoesNotFailAction(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	svc := NewService(store, DefaultConfig(), (&fakeClock{now: t0}).Now)

	ev, err := svc.RecordAction(context.Background(), 2, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionClick})
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if ev.Type != domain.ActionClick {
		t.Fatalf("event = %+v", ev)
	}

	events, _ := svc.Events(context.Background(), 2)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestService_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(nil, DefaultConfig(), (&fakeClock{now: t0}).Now)

	if _, err := svc.RecordAction(ctx, 1, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionView, Category: "shoes"}); err != nil {
		t.Fatal(err)
	}

	prefs, err := svc.GetPreferences(ctx, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(prefs.Categories) != 0 {
		t.Fatalf("user 2 sees user 1 preferences: %v", prefs.Categories)
	}
}

func TestService_ExportImport(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: t0}
	svc := NewService(nil, DefaultConfig(), clock.Now)

	if _, err := svc.RecordAction(ctx, 1, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionWishlist, Category: "bags"}); err != nil {
		t.Fatal(err)
	}
	token, err := svc.ExportSession(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ImportSession(ctx, 9, token); err != nil {
		t.Fatal(err)
	}
	prefs, _ := svc.GetPreferences(ctx, 9, false)
	if !approx(prefs.Categories["bags"], 0.1) {
		t.Fatalf("imported bags = %v", prefs.Categories["bags"])
	}

	if err := svc.ImportSession(ctx, 9, "%%%not-base64"); !errors.Is(err, ErrInvalidExportToken) {
		t.Fatalf("err = %v, want ErrInvalidExportToken", err)
	}
}

func TestService_EndSessionClearsLog(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, DefaultConfig(), (&fakeClock{now: t0}).Now)

	if _, err := svc.RecordAction(ctx, 3, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionView}); err != nil {
		t.Fatal(err)
	}
	if err := svc.EndSession(ctx, 3); err != nil {
		t.Fatal(err)
	}

	events, _ := svc.Events(ctx, 3)
	if len(events) != 0 {
		t.Fatalf("events = %d after end, want 0", len(events))
	}
}

func TestService_ChurnForNewUser(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), (&fakeClock{now: t0}).Now)

	a, err := svc.AssessChurn(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(a.Risk, 0.75) {
		t.Fatalf("risk = %v, want 0.75", a.Risk)
	}
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(nil, DefaultConfig(), nil)

	if _, err := svc.RecordAction(ctx, 1, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionView}); err == nil {
		t.Fatal("expected context error")
	}
}

// slowLoadStore holds LoadSnapshot for one user until released.
type slowLoadStore struct {
	*fakeStore
	slowUser uint
	entered  chan struct{}
	release  chan struct{}
}

func (s *slowLoadStore) LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error) {
	if userID == s.slowUser {
		close(s.entered)
		<-s.release
	}
	return s.fakeStore.LoadSnapshot(ctx, userID)
}

func TestService_SlowLoadDoesNotBlockOtherUsers(t *testing.T) {
	ctx := context.Background()
	store := &slowLoadStore{
		fakeStore: newFakeStore(),
		slowUser:  1,
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	svc := NewService(store, DefaultConfig(), (&fakeClock{now: t0}).Now)

	if _, err := svc.RecordAction(ctx, 2, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionView, Category: "bags"}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.GetPreferences(ctx, 1, false)
	}()
	<-store.entered

	done := make(chan struct{})
	go func() {
		_, _ = svc.GetPreferences(ctx, 2, false)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		close(store.release)
		t.Fatal("live user 2 waited on user 1's snapshot load")
	}

	close(store.release)
	wg.Wait()
}

// firstSaveBlocksStore parks the first SaveSnapshot until released.
type firstSaveBlocksStore struct {
	*fakeStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *firstSaveBlocksStore) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.fakeStore.SaveSnapshot(ctx, snap)
}

func TestService_ConcurrentSavesKeepNewestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &firstSaveBlocksStore{
		fakeStore: newFakeStore(),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	svc := NewService(store, DefaultConfig(), (&fakeClock{now: t0}).Now)

	var wg sync.WaitGroup
	record := func(category string) {
		defer wg.Done()
		if _, err := svc.RecordAction(ctx, 1, domain.SessionContext{}, domain.ActionInput{Type: domain.ActionView, Category: category}); err != nil {
			t.Error(err)
		}
	}

	wg.Add(1)
	go record("shoes")
	<-store.entered

	wg.Add(1)
	go record("bags")
	// give the second action time to reach its save
	time.Sleep(50 * time.Millisecond)
	close(store.release)
	wg.Wait()

	snap, err := store.fakeStore.LoadSnapshot(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Events) != 2 {
		t.Fatalf("stored events = %d, want 2", len(snap.Events))
	}
}
