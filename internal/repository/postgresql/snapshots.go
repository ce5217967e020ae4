package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

const (
	TableSnapshots  = "snapshots"
	TableParameters = "parameters"
)

type SnapshotsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewSnapshotsRepository(pool *pgxpool.Pool) *SnapshotsRepository {
	return &SnapshotsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveSnapshot inserts the snapshot row and bulk-copies its parameters.
// Callers wrap it in a transaction so a failed copy never leaves an
// empty snapshot behind.
func (r *SnapshotsRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	db := querier(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableSnapshots).
		Columns(
			"device_id",
			"names",
			"taken_at",
		).
		Values(
			snapshot.DeviceID,
			snapshot.Names,
			snapshot.TakenAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build snapshot insert: %w", err)
	}

	if err := db.QueryRow(ctx, sql, args...).Scan(&snapshot.ID); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	copied, err := db.CopyFrom(ctx, pgx.Identifier{TableParameters}, []string{
		"snapshot_id",
		"name",
		"value",
		"data_type",
	}, pgx.CopyFromSlice(len(snapshot.Parameters), func(i int) ([]any, error) {
		return []any{
			snapshot.ID,
			snapshot.Parameters[i].Name,
			snapshot.Parameters[i].Value,
			snapshot.Parameters[i].DataType,
		}, nil
	}))
	if err != nil {
		return fmt.Errorf("failed to copy parameters: %w", err)
	}

	if copied != int64(len(snapshot.Parameters)) {
		return fmt.Errorf("failed to copy parameters: copied %d rows, expected %d", copied, len(snapshot.Parameters))
	}

	return nil
}

func (r *SnapshotsRepository) SnapshotsByDevice(
	ctx context.Context,
	deviceID string,
	limit, offset uint64,
) ([]*domain.Snapshot, int, error) {
	db := querier(ctx, r.pool)

	sql, args, err := r.qb.
		Select("COUNT(*)").
		From(TableSnapshots).
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return nil, -1, fmt.Errorf("failed to build snapshot count: %w", err)
	}

	var total int
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("failed to count snapshots: %w", err)
	}

	sql, args, err = r.qb.
		Select(
			"id",
			"device_id",
			"names",
			"taken_at",
		).
		From(TableSnapshots).
		Where(sq.Eq{"device_id": deviceID}).
		OrderBy("taken_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, -1, fmt.Errorf("failed to build snapshot select: %w", err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, -1, fmt.Errorf("failed to query snapshots: %w", err)
	}

	snapshots, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Snapshot])
	if err != nil {
		return nil, -1, fmt.Errorf("failed to collect snapshots: %w", err)
	}

	return snapshots, total, nil
}

func (r *SnapshotsRepository) ParametersBySnapshot(ctx context.Context, snapshotID int64) ([]*domain.Parameter, error) {
	db := querier(ctx, r.pool)

	sql, args, err := r.qb.
		Select(
			"name",
			"value",
			"data_type",
		).
		From(TableParameters).
		Where(sq.Eq{"snapshot_id": snapshotID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build parameter select: %w", err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}

	params, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Parameter])
	if err != nil {
		return nil, fmt.Errorf("failed to collect parameters: %w", err)
	}

	return params, nil
}
