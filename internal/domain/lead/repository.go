package lead

import "context"

// Repository defines the interface for lead persistence
type Repository interface {
	// Create stores a new lead
	Create(ctx context.Context, l *Lead) error

	// List returns leads of a kind, most recent first
	List(ctx context.Context, kind string, limit, offset int) ([]*Lead, error)
}
