package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/vasool/vasool/internal/domain/lead"
	"github.com/vasool/vasool/internal/pkg/errors"
)

// LeadRepository implements lead.Repository
type LeadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *sql.DB) lead.Repository {
	return &LeadRepository{db: db}
}

// Create stores a new lead
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	now := time.Now()
	l.CreatedAt = now

	query := `
		INSERT INTO leads (kind, name, email, company, phone, message, preferred_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		l.Kind, l.Name, l.Email, l.Company, l.Phone, l.Message, l.PreferredAt, l.Status, now.Unix(),
	).Scan(&l.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create lead", err)
	}

	return nil
}

// List returns leads of a kind, most recent first
func (r *LeadRepository) List(ctx context.Context, kind string, limit, offset int) ([]*lead.Lead, error) {
	query := `
		SELECT id, kind, name, email, company, phone, message, preferred_at, status, created_at
		FROM leads
		WHERE kind = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list leads", err)
	}
	defer rows.Close()

	leads := []*lead.Lead{}
	for rows.Next() {
		var l lead.Lead
		var createdAt int64

		err := rows.Scan(&l.ID, &l.Kind, &l.Name, &l.Email, &l.Company, &l.Phone,
			&l.Message, &l.PreferredAt, &l.Status, &createdAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan lead", err)
		}
		l.CreatedAt = time.Unix(createdAt, 0)
		leads = append(leads, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate leads", err)
	}

	return leads, nil
}
