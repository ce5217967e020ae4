package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/kurochkinivan/webpa_collector/internal/transform"
)

type Fetcher interface {
	FetchConfig(ctx context.Context, deviceID, names string) ([]byte, error)
}

type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Collector takes one configuration snapshot of a device and archives
// it: fetch, convert the payload into parameter records, save snapshot
// and parameters in a single transaction.
type Collector struct {
	log           *slog.Logger
	fetcher       Fetcher
	snapshotSaver SnapshotSaver
	transactor    Transactor
}

func New(log *slog.Logger, fetcher Fetcher, snapshotSaver SnapshotSaver, transactor Transactor) *Collector {
	return &Collector{
		log:           log,
		fetcher:       fetcher,
		snapshotSaver: snapshotSaver,
		transactor:    transactor,
	}
}

func (c *Collector) Collect(ctx context.Context, deviceID, names string) (*domain.Snapshot, error) {
	raw, err := c.fetcher.FetchConfig(ctx, deviceID, names)
	if err != nil {
		return nil, err
	}

	params, err := transform.Parameters(raw, "device "+deviceID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		DeviceID:   deviceID,
		Names:      names,
		TakenAt:    time.Now().UTC(),
		Parameters: params,
	}

	err = c.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.snapshotSaver.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "snapshot archived",
		slog.String("device_id", deviceID),
		slog.Int64("snapshot_id", snapshot.ID),
		slog.Int("parameter_count", len(snapshot.Parameters)),
	)

	return snapshot, nil
}
