package repository

import "context"

// Repository is a thin generic gorm accessor for single-table models.
type Repository[T any] interface {
	FindOne(ctx context.Context, query *T) (*T, error)
	Upsert(ctx context.Context, resource *T, conflictColumns []string, updateColumns []string) error
	Delete(ctx context.Context, query *T) error
}
