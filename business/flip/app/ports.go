package app

import (
	"context"

	marketdomain "github.com/fliplab/bzflip/business/market/domain"
)

// SnapshotSource provides the per-run market snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*marketdomain.Snapshot, error)
}
