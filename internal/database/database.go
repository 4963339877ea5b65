package database

import (
	"context"
	"sync"

	"github.com/connorkuehl/pointsbot/internal/points"
)

// Store persists the whole ledger document at once.
//
// Load never fails: a missing or malformed backing store reads as
// points.Default(). Save must report any failure to persist.
type Store interface {
	Load(ctx context.Context) points.Document
	Save(ctx context.Context, doc points.Document) error
}

// Locked serializes read-modify-write cycles against a Store so that two
// overlapping updates cannot overwrite each other.
type Locked struct {
	mu    sync.Mutex
	store Store
}

func NewLocked(store Store) *Locked {
	return &Locked{store: store}
}

func (l *Locked) Load(ctx context.Context) points.Document {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Load(ctx)
}

// Update loads a fresh document, applies fn to it and saves the result.
// Nothing is saved when fn returns an error.
func (l *Locked) Update(ctx context.Context, fn func(doc *points.Document) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.store.Load(ctx)
	if err := fn(&doc); err != nil {
		return err
	}

	return l.store.Save(ctx, doc)
}
