package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/fleetops/fleet-sync/internal/domain/payload"
	"github.com/fleetops/fleet-sync/internal/domain/production"
	"github.com/fleetops/fleet-sync/internal/domain/team"
	"github.com/fleetops/fleet-sync/internal/platform/logging"
	"github.com/fleetops/fleet-sync/internal/platform/resilience"
)

const syncGateKey = "production-snapshot"

const shapeHint = `expected {"rows": [...]}, a report export under results[0].tables[0].rows, or a bare row array (optionally wrapped in "body")`

// SyncService runs the production-data reconciliation pipeline: decode the
// payload, extract rows, resolve team codes, aggregate, and replace the
// persisted snapshot. It holds no state between invocations; the team index
// is re-fetched from the store on every run so mappings are always current.
type SyncService struct {
	teamRepo       team.Repository
	productionRepo production.Repository
	codes          codeNormalizer
	maxDocuments   int
	gate           resilience.Gate
	logger         *logging.Logger
}

type codeNormalizer interface {
	Normalize(code string) string
}

func NewSyncService(
	teamRepo team.Repository,
	productionRepo production.Repository,
	codes codeNormalizer,
	maxDocuments int,
	logger *logging.Logger,
) *SyncService {
	if maxDocuments <= 0 {
		maxDocuments = payload.DefaultMaxDocuments
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		teamRepo:       teamRepo,
		productionRepo: productionRepo,
		codes:          codes,
		maxDocuments:   maxDocuments,
		logger:         logger,
	}
}

// Sync processes one inbound payload end to end. Row-level problems
// (unmapped teams, bad dates) are counted as ignored and never fail the run;
// decode and storage problems do.
func (s *SyncService) Sync(ctx context.Context, body []byte) (production.SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Sync")
	defer span.End()

	docs, err := payload.DecodeDocuments(body, s.maxDocuments)
	if err != nil {
		return production.SyncReport{}, err
	}
	s.logger.DebugContext(ctx, "payload decoded", "body_bytes", len(body), "documents", len(docs))

	rows := make([]payload.RawRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, payload.ExtractRows(doc)...)
	}
	if len(rows) == 0 {
		err := errors.Wrapf(ErrNoRowsFound, "across %d document(s)", len(docs))
		return production.SyncReport{}, errors.WithHint(err, shapeHint)
	}

	// The replace is transactional, but overlapping runs would still race on
	// which payload the final snapshot reflects. Serialize them.
	release := s.gate.Acquire(syncGateKey)
	defer release()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return production.SyncReport{}, fmt.Errorf("%w: list teams: %v", ErrStorageFailure, err)
	}

	outcome := production.Aggregate(rows, team.IndexByName(teams), s.codes.Normalize)

	if err := s.productionRepo.ReplaceAll(ctx, outcome.Records); err != nil {
		return production.SyncReport{}, fmt.Errorf("%w: replace production snapshot: %v", ErrStorageFailure, err)
	}

	s.logger.InfoContext(ctx, "production snapshot replaced",
		"documents", len(docs),
		"rows_received", outcome.Received,
		"rows_ignored", outcome.Ignored,
		"records_inserted", len(outcome.Records),
	)

	return production.SyncReport{
		Inserted:      len(outcome.Records),
		Ignored:       outcome.Ignored,
		TotalReceived: outcome.Received,
	}, nil
}
