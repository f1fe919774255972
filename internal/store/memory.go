package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Memory is a Store held in process memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	records []Record
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1, now: time.Now}
}

// Create implements Store.
func (m *Memory) Create(_ context.Context, rec NewRecord) (Record, error) {
	rec, err := normalise(rec)
	if err != nil {
		return Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := Record{
		ID:         m.nextID,
		Name:       rec.Name,
		Hue:        rec.Hue,
		Saturation: rec.Saturation,
		Colours:    rec.Colours,
		Mode:       rec.Mode,
		Hues:       rec.Hues,
		CreatedAt:  m.now().UTC().Truncate(time.Millisecond),
	}
	m.nextID++
	m.records = append(m.records, r)
	return clone(r), nil
}

// List implements Store.
func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, clone(m.records[i]))
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, id int64) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.records {
		if r.ID == id {
			m.records = slices.Delete(m.records, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

func clone(r Record) Record {
	r.Colours = slices.Clone(r.Colours)
	r.Hues = slices.Clone(r.Hues)
	return r
}
