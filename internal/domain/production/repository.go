package production

import "context"

// Repository replaces the persisted production snapshot. ReplaceAll discards
// every existing row and writes the candidate set in one transaction; an
// empty candidate set leaves the table empty, because the upstream source is
// authoritative for the whole dataset on every run.
type Repository interface {
	ReplaceAll(ctx context.Context, records []Record) error
}
