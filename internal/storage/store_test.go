package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// fakeClock is a manually advanced clock shared by store and backend.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 123456789, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// failingBackend fails every call.
type failingBackend struct{}

var errBackendDown = errors.New("backend down")

func (failingBackend) Load(context.Context, string) ([]byte, error) { return nil, errBackendDown }
func (failingBackend) Save(context.Context, string, []byte, time.Duration) error {
	return errBackendDown
}
func (failingBackend) Delete(context.Context, string) error { return errBackendDown }

func newTestStore(t *testing.T) (*Store, *MemoryBackend, *fakeClock) {
	t.Helper()
	log := logger.Nop()
	clock := newFakeClock()
	mem := NewMemoryBackend(log)
	mem.now = clock.Now
	return NewStore(mem, log, WithClock(clock.Now)), mem, clock
}

func TestGetReturnsDefaultOnMiss(t *testing.T) {
	store, _, clock := newTestStore(t)
	sess := store.Get(context.Background(), "u1")

	if sess.UserID != "u1" || sess.Step != domain.StepLanguage || sess.Language != domain.LanguageEnglish {
		t.Fatalf("unexpected default session: %+v", sess)
	}
	if len(sess.Ingredients) != 0 {
		t.Fatalf("expected no ingredients, got %v", sess.Ingredients)
	}
	if !sess.Timestamp.Equal(clock.Now()) {
		t.Fatalf("expected timestamp %s, got %s", clock.Now(), sess.Timestamp)
	}
}

func TestUpdateMergesAndPersists(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	store.Update(ctx, "u1", func(s *domain.Session) {
		s.Step = domain.StepMeal
		s.Language = domain.LanguageHindi
	})
	got := store.Update(ctx, "u1", func(s *domain.Session) {
		s.MealType = domain.MealDinner
	})

	if got.Step != domain.StepMeal || got.Language != domain.LanguageHindi || got.MealType != domain.MealDinner {
		t.Fatalf("fields lost across updates: %+v", got)
	}

	reloaded := store.Get(ctx, "u1")
	if reloaded.MealType != domain.MealDinner || reloaded.Language != domain.LanguageHindi {
		t.Fatalf("update not persisted: %+v", reloaded)
	}
}

func TestUpdateReturnsCopy(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	got := store.Update(ctx, "u1", func(s *domain.Session) { s.AddIngredient("Rice") })
	got.Ingredients[0] = "Mutated"

	if store.Get(ctx, "u1").Ingredients[0] != "Rice" {
		t.Fatal("returned session aliases stored state")
	}
}

func TestTimestampRoundTripsAsInstant(t *testing.T) {
	store, _, clock := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "u1", domain.NewSession("u1", time.Time{}))
	got := store.Get(ctx, "u1")
	if !got.Timestamp.Equal(clock.Now()) {
		t.Fatalf("timestamp %s != %s", got.Timestamp, clock.Now())
	}
}

func TestExpiredSessionIsReplaced(t *testing.T) {
	store, _, clock := newTestStore(t)
	ctx := context.Background()

	store.Update(ctx, "u1", func(s *domain.Session) { s.Step = domain.StepDiet })

	clock.Advance(59 * time.Minute)
	if got := store.Get(ctx, "u1").Step; got != domain.StepDiet {
		t.Fatalf("expected session to survive 59m, got step %s", got)
	}

	clock.Advance(2 * time.Minute)
	if got := store.Get(ctx, "u1").Step; got != domain.StepLanguage {
		t.Fatalf("expected expired session to reset, got step %s", got)
	}
}

func TestClearDeletes(t *testing.T) {
	store, mem, _ := newTestStore(t)
	ctx := context.Background()

	store.Update(ctx, "u1", func(s *domain.Session) { s.Step = domain.StepCuisine })
	store.Clear(ctx, "u1")

	if mem.Len() != 0 {
		t.Fatalf("expected empty backend, got %d entries", mem.Len())
	}
	if got := store.Get(ctx, "u1").Step; got != domain.StepLanguage {
		t.Fatalf("expected default after clear, got %s", got)
	}
	// Clearing twice is fine.
	store.Clear(ctx, "u1")
}

func TestCorruptRecordYieldsDefault(t *testing.T) {
	store, mem, _ := newTestStore(t)
	ctx := context.Background()

	if err := mem.Save(ctx, "u1", []byte("{not json"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Get(ctx, "u1"); got.Step != domain.StepLanguage {
		t.Fatalf("expected default session, got %+v", got)
	}
}

func TestBackendFailureDegrades(t *testing.T) {
	store := NewStore(failingBackend{}, logger.Nop())
	ctx := context.Background()

	sess := store.Get(ctx, "u1")
	if sess.Step != domain.StepLanguage {
		t.Fatalf("expected default session, got %+v", sess)
	}

	got := store.Update(ctx, "u1", func(s *domain.Session) { s.Step = domain.StepMeal })
	if got.Step != domain.StepMeal {
		t.Fatalf("update should still return the merged value, got %s", got.Step)
	}
	store.Clear(ctx, "u1")
	if n := store.Sweep(ctx, time.Now()); n != 0 {
		t.Fatalf("expected no sweep on non-sweeper backend, got %d", n)
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(ctx, "u1", func(s *domain.Session) {
				s.AddIngredient(fmt.Sprintf("item-%d", i))
			})
		}()
	}
	wg.Wait()

	if got := len(store.Get(ctx, "u1").Ingredients); got != workers {
		t.Fatalf("expected %d ingredients, got %d (lost update)", workers, got)
	}
	if n := store.locks.size(); n != 0 {
		t.Fatalf("expected key locks to be released, %d remain", n)
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store, mem, clock := newTestStore(t)
	ctx := context.Background()

	store.Update(ctx, "old", func(s *domain.Session) {})
	clock.Advance(45 * time.Minute)
	store.Update(ctx, "fresh", func(s *domain.Session) {})
	clock.Advance(30 * time.Minute)

	if n := store.Sweep(ctx, clock.Now()); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if mem.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", mem.Len())
	}
	if got := store.Get(ctx, "fresh"); got.Timestamp.IsZero() || got.Step != domain.StepLanguage {
		t.Fatalf("fresh session damaged: %+v", got)
	}
}

func TestSweeperStartStop(t *testing.T) {
	log := logger.Nop()
	mem := NewMemoryBackend(log)
	store := NewStore(mem, log, WithTTL(10*time.Millisecond))
	ctx := context.Background()

	store.Update(ctx, "u1", func(s *domain.Session) {})

	sw := NewSweeper(store, log, WithSweepInterval(5*time.Millisecond))
	sw.Start(ctx)
	sw.Start(ctx) // second start is a no-op

	deadline := time.Now().Add(time.Second)
	for mem.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sw.Stop()
	sw.Stop()

	if mem.Len() != 0 {
		t.Fatalf("expected sweeper to empty the backend, %d left", mem.Len())
	}
}
