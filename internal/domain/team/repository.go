package team

import "context"

// Repository describes team persistence needs from use cases. The table is
// owned by the administration subsystem; the pipeline never writes it.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
}
