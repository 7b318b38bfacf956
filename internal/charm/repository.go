// ABOUTME: storage.Repository implementation on top of Charm KV.
// ABOUTME: Type-prefixed keys, JSON values, and version checks done under the client lock.
package charm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
)

// Key prefixes. Day keys are "<prefix><user>:<date>", sample keys
// "<prefix><user>:<id>".
const (
	ProfilePrefix  = "profile:"
	HealthPrefix   = "health:"
	DietPrefix     = "diet:"
	ExercisePrefix = "exercise:"
)

var _ storage.Repository = (*Client)(nil)

func profileKey(userID string) string { return ProfilePrefix + userID }

func dayKey(prefix, userID, date string) string { return prefix + userID + ":" + date }

func userPrefix(prefix, userID string) string {
	if userID == "" {
		return prefix
	}
	return prefix + userID + ":"
}

// GetProfile retrieves a user's profile.
func (c *Client) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok, err := c.get(profileKey(userID))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	return unmarshalJSON[models.UserProfile](data)
}

// PutProfile creates or replaces a user's profile.
func (c *Client) PutProfile(_ context.Context, p *models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.set(profileKey(p.ID), data); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// ListProfiles returns every stored profile ordered by user ID.
func (c *Client) ListProfiles(_ context.Context) ([]*models.UserProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values, err := c.listByPrefix(ProfilePrefix)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return unmarshalAll[models.UserProfile](values)
}

// AddHealthSample appends a health sample.
func (c *Client) AddHealthSample(_ context.Context, s *models.HealthSample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal health sample: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.set(HealthPrefix+s.UserID+":"+s.ID.String(), data); err != nil {
		return fmt.Errorf("add health sample: %w", err)
	}
	return nil
}

// LatestHealthSample returns the user's most recent sample by date, then creation time.
func (c *Client) LatestHealthSample(ctx context.Context, userID string) (*models.HealthSample, error) {
	samples, err := c.ListHealthSamples(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("health sample for %s: %w", userID, storage.ErrNotFound)
	}
	return samples[0], nil
}

// ListHealthSamples returns samples newest first.
func (c *Client) ListHealthSamples(_ context.Context, userID string, limit int) ([]*models.HealthSample, error) {
	c.mu.RLock()
	values, err := c.listByPrefix(userPrefix(HealthPrefix, userID))
	c.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}

	all, err := unmarshalAll[models.HealthSample](values)
	if err != nil {
		return nil, err
	}
	samples := all[:0]
	for _, s := range all {
		if ownedBy(s.UserID, userID) {
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].After(samples[j]) })
	if limit > 0 && len(samples) > limit {
		samples = samples[:limit]
	}
	return samples, nil
}

// GetDietDay retrieves the diet record for a user and date.
func (c *Client) GetDietDay(_ context.Context, userID, date string) (*models.DayDietRecord, error) {
	return getDay[models.DayDietRecord](c, dayKey(DietPrefix, userID, date))
}

// PutDietDay stores a diet record if the stored version still equals expectedVersion.
func (c *Client) PutDietDay(_ context.Context, rec *models.DayDietRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	if err := c.putDay(dayKey(DietPrefix, rec.UserID, rec.Date), &next, expectedVersion); err != nil {
		return fmt.Errorf("put diet day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListDietDays returns diet records in the range, newest first.
func (c *Client) ListDietDays(_ context.Context, userID string, r storage.DayRange) ([]*models.DayDietRecord, error) {
	recs, err := listDays[models.DayDietRecord](c, userPrefix(DietPrefix, userID))
	if err != nil {
		return nil, fmt.Errorf("list diet days: %w", err)
	}
	return filterDays(recs, userID, r, func(d *models.DayDietRecord) (string, string) { return d.Date, d.UserID }), nil
}

// GetExerciseDay retrieves the exercise record for a user and date.
func (c *Client) GetExerciseDay(_ context.Context, userID, date string) (*models.DayExerciseRecord, error) {
	return getDay[models.DayExerciseRecord](c, dayKey(ExercisePrefix, userID, date))
}

// PutExerciseDay stores an exercise record if the stored version still equals expectedVersion.
func (c *Client) PutExerciseDay(_ context.Context, rec *models.DayExerciseRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	if err := c.putDay(dayKey(ExercisePrefix, rec.UserID, rec.Date), &next, expectedVersion); err != nil {
		return fmt.Errorf("put exercise day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListExerciseDays returns exercise records in the range, newest first.
func (c *Client) ListExerciseDays(_ context.Context, userID string, r storage.DayRange) ([]*models.DayExerciseRecord, error) {
	recs, err := listDays[models.DayExerciseRecord](c, userPrefix(ExercisePrefix, userID))
	if err != nil {
		return nil, fmt.Errorf("list exercise days: %w", err)
	}
	return filterDays(recs, userID, r, func(d *models.DayExerciseRecord) (string, string) { return d.Date, d.UserID }), nil
}

func getDay[T any](c *Client, key string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok, err := c.get(key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrNotFound)
	}
	return unmarshalJSON[T](data)
}

// putDay writes doc under key when the stored version equals expected.
// The read and the write happen under one lock.
func (c *Client) putDay(key string, doc any, expected int64) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok, err := c.get(key)
	if err != nil {
		return err
	}
	switch {
	case !ok && expected != 0:
		return storage.ErrVersionConflict
	case ok:
		var stored struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal(current, &stored); err != nil {
			return fmt.Errorf("unmarshal stored version: %w", err)
		}
		if stored.Version != expected {
			return storage.ErrVersionConflict
		}
	}
	return c.set(key, data)
}

func listDays[T any](c *Client, prefix string) ([]*T, error) {
	c.mu.RLock()
	values, err := c.listByPrefix(prefix)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return unmarshalAll[T](values)
}

// ownedBy reports whether a document stored for user belongs to userID.
// User IDs may contain ':', so the key prefix alone is not enough.
func ownedBy(user, userID string) bool {
	return userID == "" || user == userID
}

// filterDays keeps userID's records inside r and sorts newest first, ties by user ID.
func filterDays[T any](recs []*T, userID string, r storage.DayRange, keyOf func(*T) (date, user string)) []*T {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		if date, user := keyOf(rec); ownedBy(user, userID) && r.Contains(date) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, ui := keyOf(out[i])
		dj, uj := keyOf(out[j])
		if di != dj {
			return di > dj
		}
		return ui < uj
	})
	if r.Limit > 0 && len(out) > r.Limit {
		out = out[:r.Limit]
	}
	return out
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &result, nil
}

func unmarshalAll[T any](values [][]byte) ([]*T, error) {
	out := make([]*T, 0, len(values))
	for _, v := range values {
		item, err := unmarshalJSON[T](v)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
