// ABOUTME: Tests for the Charm-backed repository using an in-memory store.
// ABOUTME: Runs the shared repository suite plus key layout and read-only checks.
package charm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/harperreed/fitdiary/internal/storage/storagetest"
)

// memStore is an in-memory Store.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *memStore) Keys() ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([][]byte, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, []byte(k))
	}
	return keys, nil
}

func (m *memStore) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
	return nil
}

func (m *memStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

func (m *memStore) IsReadOnly() bool { return m.readOnly }
func (m *memStore) Close() error     { return nil }

func TestCharmRepository(t *testing.T) {
	storagetest.RunRepositorySuite(t, func(t *testing.T) storage.Repository {
		return NewWithStore(newMemStore(), false)
	})
}

func TestKeyLayout(t *testing.T) {
	store := newMemStore()
	c := NewWithStore(store, false)
	ctx := context.Background()

	if err := c.PutProfile(ctx, models.NewUserProfile("ann")); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}
	s := models.NewHealthSample("ann", "2025-03-01", 70)
	if err := c.AddHealthSample(ctx, s); err != nil {
		t.Fatalf("AddHealthSample failed: %v", err)
	}
	if err := c.PutDietDay(ctx, models.NewDayDietRecord("ann", "2025-03-01"), 0); err != nil {
		t.Fatalf("PutDietDay failed: %v", err)
	}
	if err := c.PutExerciseDay(ctx, models.NewDayExerciseRecord("ann", "2025-03-01"), 0); err != nil {
		t.Fatalf("PutExerciseDay failed: %v", err)
	}

	for _, key := range []string{
		"profile:ann",
		"health:ann:" + s.ID.String(),
		"diet:ann:2025-03-01",
		"exercise:ann:2025-03-01",
	} {
		if _, ok := store.data[key]; !ok {
			t.Errorf("expected key %q to exist", key)
		}
	}
}

func TestUserPrefixDoesNotMatchLongerIDs(t *testing.T) {
	c := NewWithStore(newMemStore(), false)
	ctx := context.Background()

	for _, user := range []string{"bob", "bobby", "bob:eve"} {
		if err := c.PutDietDay(ctx, models.NewDayDietRecord(user, "2025-03-01"), 0); err != nil {
			t.Fatalf("PutDietDay failed: %v", err)
		}
		if err := c.PutExerciseDay(ctx, models.NewDayExerciseRecord(user, "2025-03-02"), 0); err != nil {
			t.Fatalf("PutExerciseDay failed: %v", err)
		}
	}
	recs, err := c.ListDietDays(ctx, "bob", storage.DayRange{})
	if err != nil {
		t.Fatalf("ListDietDays failed: %v", err)
	}
	if len(recs) != 1 || recs[0].UserID != "bob" {
		t.Errorf("ListDietDays(bob) = %d records, want only bob's", len(recs))
	}
	ex, err := c.ListExerciseDays(ctx, "bob", storage.DayRange{})
	if err != nil {
		t.Fatalf("ListExerciseDays failed: %v", err)
	}
	if len(ex) != 1 || ex[0].UserID != "bob" {
		t.Errorf("ListExerciseDays(bob) = %d records, want only bob's", len(ex))
	}

	all, err := c.ListDietDays(ctx, "", storage.DayRange{})
	if err != nil {
		t.Fatalf("ListDietDays(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListDietDays(all) = %d records, want 3", len(all))
	}
}

func TestHealthSamplesStayWithTheirUser(t *testing.T) {
	c := NewWithStore(newMemStore(), false)
	ctx := context.Background()

	if err := c.AddHealthSample(ctx, models.NewHealthSample("bob:eve", "2025-03-05", 55)); err != nil {
		t.Fatalf("AddHealthSample failed: %v", err)
	}
	if _, err := c.LatestHealthSample(ctx, "bob"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LatestHealthSample(bob) err = %v, want ErrNotFound", err)
	}

	if err := c.AddHealthSample(ctx, models.NewHealthSample("bob", "2025-03-01", 80)); err != nil {
		t.Fatalf("AddHealthSample failed: %v", err)
	}
	s, err := c.LatestHealthSample(ctx, "bob")
	if err != nil {
		t.Fatalf("LatestHealthSample failed: %v", err)
	}
	if s.UserID != "bob" || s.WeightKg != 80 {
		t.Errorf("LatestHealthSample(bob) = %+v, want bob's 80 kg", s)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	store := newMemStore()
	store.readOnly = true
	c := NewWithStore(store, true)

	err := c.PutProfile(context.Background(), models.NewUserProfile("ro"))
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("PutProfile err = %v, want ErrReadOnly", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode should be a no-op, got %v", err)
	}
	if store.syncs != 0 {
		t.Errorf("read-only client synced %d times", store.syncs)
	}
}

func TestAutoSyncAfterWrite(t *testing.T) {
	store := newMemStore()
	c := NewWithStore(store, true)
	ctx := context.Background()

	if err := c.PutProfile(ctx, models.NewUserProfile("sy")); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}
	if store.syncs != 1 {
		t.Errorf("syncs = %d, want 1", store.syncs)
	}

	c.SetAutoSync(false)
	if err := c.PutProfile(ctx, models.NewUserProfile("sy")); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}
	if store.syncs != 1 {
		t.Errorf("syncs after disabling = %d, want 1", store.syncs)
	}
}

func TestConflictLeavesStoredDocument(t *testing.T) {
	c := NewWithStore(newMemStore(), false)
	ctx := context.Background()

	rec := models.NewDayExerciseRecord("cy", "2025-03-01")
	if err := c.PutExerciseDay(ctx, rec, 0); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	stale := models.NewDayExerciseRecord("cy", "2025-03-01")
	stale.Exercises = append(stale.Exercises, *models.NewExerciseEntry("swimming", 45))
	stale.Recompute()
	err := c.PutExerciseDay(ctx, stale, 0)
	if !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
	if !strings.Contains(err.Error(), "cy/2025-03-01") {
		t.Errorf("error should name the day, got %q", err)
	}

	got, err := c.GetExerciseDay(ctx, "cy", "2025-03-01")
	if err != nil {
		t.Fatalf("GetExerciseDay failed: %v", err)
	}
	if len(got.Exercises) != 0 || got.Version != 1 {
		t.Errorf("stored record changed: %+v", got)
	}
}
