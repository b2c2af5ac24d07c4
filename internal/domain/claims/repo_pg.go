package claims

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditRepoPG struct{ pool *pgxpool.Pool }

// NewAuditRepoPG creates a Postgres-backed AuditRepository. The parse_audit
// table is created by the db migrator.
func NewAuditRepoPG(pool *pgxpool.Pool) AuditRepository {
	return &auditRepoPG{pool: pool}
}

const auditCols = `id, kind, transaction_id, claim_number, segment_count, payload, created_at`

func (r *auditRepoPG) scan(row pgx.Row) (*ParseRecord, error) {
	var rec ParseRecord
	err := row.Scan(&rec.ID, &rec.Kind, &rec.TransactionID, &rec.ClaimNumber,
		&rec.SegmentCount, &rec.Payload, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *auditRepoPG) Create(ctx context.Context, rec *ParseRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO parse_audit (id, kind, transaction_id, claim_number, segment_count, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		rec.ID, rec.Kind, rec.TransactionID, rec.ClaimNumber, rec.SegmentCount, rec.Payload,
	).Scan(&rec.CreatedAt)
}

func (r *auditRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ParseRecord, error) {
	return r.scan(r.pool.QueryRow(ctx,
		`SELECT `+auditCols+` FROM parse_audit WHERE id = $1`, id))
}

func (r *auditRepoPG) List(ctx context.Context, limit, offset int) ([]*ParseRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parse_audit`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+auditCols+` FROM parse_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*ParseRecord
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}
