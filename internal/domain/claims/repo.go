package claims

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParseRecord is the audit-trail row persisted for each successful parse.
type ParseRecord struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Kind          string          `db:"kind" json:"kind"`
	TransactionID string          `db:"transaction_id" json:"transaction_id,omitempty"`
	ClaimNumber   string          `db:"claim_number" json:"claim_number,omitempty"`
	SegmentCount  int             `db:"segment_count" json:"segment_count"`
	Payload       json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// AuditRepository stores parse records for operational traceability. The
// parsing and analysis pipeline itself is stateless; only this trail persists.
type AuditRepository interface {
	Create(ctx context.Context, rec *ParseRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*ParseRecord, error)
	List(ctx context.Context, limit, offset int) ([]*ParseRecord, int, error)
}
