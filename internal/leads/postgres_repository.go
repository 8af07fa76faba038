package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the subset of pgxpool.Pool the repository uses.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, business_name, industry, contact_phone, challenge_summary,
			urgency, loss_band, appointment_slot, case_ref, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.BusinessName,
		req.Industry,
		req.ContactPhone,
		req.ChallengeSummary,
		req.Urgency,
		req.LossBand,
		req.AppointmentSlot,
		req.CaseRef,
		req.Source,
		StatusNew,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:               id.String(),
		BusinessName:     req.BusinessName,
		Industry:         req.Industry,
		ContactPhone:     req.ContactPhone,
		ChallengeSummary: req.ChallengeSummary,
		Urgency:          req.Urgency,
		LossBand:         req.LossBand,
		AppointmentSlot:  req.AppointmentSlot,
		CaseRef:          req.CaseRef,
		Source:           req.Source,
		Status:           StatusNew,
		CreatedAt:        createdAt,
	}, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, business_name, industry, contact_phone, challenge_summary,
			urgency, loss_band, appointment_slot, case_ref, source, status, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.BusinessName,
		&lead.Industry,
		&lead.ContactPhone,
		&lead.ChallengeSummary,
		&lead.Urgency,
		&lead.LossBand,
		&lead.AppointmentSlot,
		&lead.CaseRef,
		&lead.Source,
		&lead.Status,
		&lead.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}

// List fetches leads newest-first with optional status/source filters.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	query := `
		SELECT id, business_name, industry, contact_phone, challenge_summary,
			urgency, loss_band, appointment_slot, case_ref, source, status, created_at
		FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR source = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, filter.Status, filter.Source, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Lead
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.BusinessName,
			&lead.Industry,
			&lead.ContactPhone,
			&lead.ChallengeSummary,
			&lead.Urgency,
			&lead.LossBand,
			&lead.AppointmentSlot,
			&lead.CaseRef,
			&lead.Source,
			&lead.Status,
			&lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: rows failed: %w", err)
	}
	return out, nil
}

// UpdateStatus moves a lead through its lifecycle.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	tag, err := r.db.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("leads: update status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
