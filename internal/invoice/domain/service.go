package domain

import "context"

// Store holds the invoice collection and persists it on every mutation.
type Store interface {
	Create(ctx context.Context, details Details, template Template) Invoice
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64)
	Get(ctx context.Context, id int64) (Invoice, bool)
	FindByID(ctx context.Context, raw string) (Invoice, bool)
	List(ctx context.Context) []Invoice
}
