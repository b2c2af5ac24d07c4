package claims

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// auditRepoMem is the in-memory audit store used when no DATABASE_URL is
// configured and in tests. List returns newest-first like the Postgres store.
type auditRepoMem struct {
	mu      sync.RWMutex
	records []*ParseRecord
	byID    map[uuid.UUID]*ParseRecord
}

// NewAuditRepoMem creates an in-memory AuditRepository.
func NewAuditRepoMem() AuditRepository {
	return &auditRepoMem{byID: make(map[uuid.UUID]*ParseRecord)}
}

func (r *auditRepoMem) Create(_ context.Context, rec *ParseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	r.byID[rec.ID] = rec
	return nil
}

func (r *auditRepoMem) GetByID(_ context.Context, id uuid.UUID) (*ParseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("parse record not found: %s", id)
	}
	return rec, nil
}

func (r *auditRepoMem) List(_ context.Context, limit, offset int) ([]*ParseRecord, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.records)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*ParseRecord, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, r.records[total-1-i])
	}
	return out, total, nil
}
