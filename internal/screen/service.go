package screen

import (
	"context"

	"netmonitor/internal/domain"
)

// Service is the set of screen operations exposed to transports.
type Service interface {
	Snapshot(ctx context.Context) (View, error)
	Grant(ctx context.Context) (View, error)
	Refresh(ctx context.Context) (View, error)
	Pull(ctx context.Context) (View, error)
	Ingest(ctx context.Context, sample domain.Sample) (View, error)
	Export(ctx context.Context) (string, error)
	Subscribe() (<-chan View, func())
}

var _ Service = (*Controller)(nil)
