package services

import (
	"context"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
)

// Reconciler implements idempotent partial updates on top of a store
// that only knows whole-field PUTs. It diffs the explicitly provided
// candidate fields against the current record and writes only what
// actually differs; an empty diff short-circuits without any write.
type Reconciler struct {
	store providers.TableStore
}

// NewReconciler creates a new update reconciler.
func NewReconciler(store providers.TableStore) *Reconciler {
	return &Reconciler{store: store}
}

// Apply reconciles candidates against the record identified by id in
// table. Fields absent from candidates are never considered. Returns
// the canonical post-update record, re-read from the store; when
// nothing differs, the current record is returned and no write is
// issued.
func (r *Reconciler) Apply(ctx context.Context, table, idField, id string, candidates entities.Record) (entities.Record, error) {
	current, err := fetchByID(ctx, r.store, table, idField, id)
	if err != nil {
		return nil, err
	}

	changed := entities.Record{}
	for field, value := range candidates {
		if !jsonEqual(current[field], value) {
			changed[field] = value
		}
	}

	if len(changed) == 0 {
		return current, nil
	}

	if _, err := r.store.Update(ctx, table, id, changed); err != nil {
		return nil, err
	}

	// Read-after-write: the store offers no transactional read-back,
	// so the re-fetch is assumed, not guaranteed, to see the write.
	return fetchByID(ctx, r.store, table, idField, id)
}
