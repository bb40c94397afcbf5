package memory

import (
	"context"
	"sync"

	"github.com/fleetops/fleet-sync/internal/domain/production"
)

// ProductionRepository keeps the snapshot in memory, mirroring the postgres
// replace semantics for tests and local development.
type ProductionRepository struct {
	mu      sync.RWMutex
	records map[production.Key]production.Record
}

func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{records: make(map[production.Key]production.Record)}
}

func (r *ProductionRepository) ReplaceAll(_ context.Context, records []production.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[production.Key]production.Record, len(records))
	for _, record := range records {
		r.records[record.Key()] = record
	}

	return nil
}

// Records returns the current snapshot content, for assertions.
func (r *ProductionRepository) Records() []production.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]production.Record, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record)
	}

	return out
}
