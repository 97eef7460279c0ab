package providers

import (
	"context"

	"github.com/clinicbridge/backend/internal/domain/entities"
)

// TableStore is the interface to the remote record-table store. The
// store supports no filtering, no transactions and no partial-update
// semantics of its own; everything beyond plain GET/POST/PUT lives in
// the application layer.
type TableStore interface {
	// FetchAll returns every record of a table, in store order.
	FetchAll(ctx context.Context, table string) ([]entities.Record, error)

	// Create appends a record to a table and returns the store's
	// response body, which may wrap the record in a data envelope.
	Create(ctx context.Context, table string, payload entities.Record) (entities.Record, error)

	// Update overwrites the given fields of the record identified by
	// id and returns the store's response body.
	Update(ctx context.Context, table string, id string, partial entities.Record) (entities.Record, error)
}
