package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// AuditRepository persists audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) error
	ListByChannel(ctx context.Context, channelID string, limit, offset int) ([]domain.AuditRecord, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates the repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	const query = `
        INSERT INTO audit_log (id, kind, channel_id, actor, details, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Kind,
		record.ChannelID,
		record.Actor,
		record.Details,
		record.CreatedAt,
	)
	return err
}

func (r *auditRepository) ListByChannel(ctx context.Context, channelID string, limit, offset int) ([]domain.AuditRecord, error) {
	const query = `
        SELECT id, kind, channel_id, actor, details, created_at
        FROM audit_log WHERE channel_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, channelID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var record domain.AuditRecord
		if err := rows.Scan(
			&record.ID,
			&record.Kind,
			&record.ChannelID,
			&record.Actor,
			&record.Details,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
