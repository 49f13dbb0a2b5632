package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const snapshotTable = "snapshots"

// snapshotRepo implements SnapshotRepo with the ent SQL builder.
type snapshotRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(snapshotTable).
		Columns("namespace", "sequence", "timestamp", "data").
		Values(snap.Namespace, snap.Sequence, snap.Timestamp.UTC(), string(snap.Data)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = id
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, namespace string) (*Snapshot, error) {
	query, args := builder().Select("id", "namespace", "sequence", "timestamp", "data").
		From(entsql.Table(snapshotTable)).
		Where(entsql.EQ("namespace", namespace)).
		OrderBy(entsql.Desc("sequence"), entsql.Desc("id")).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query latest snapshot: %w", err)
		}
		return nil, nil
	}
	var (
		s    Snapshot
		data string
	)
	if err := rows.Scan(&s.ID, &s.Namespace, &s.Sequence, &s.Timestamp, &data); err != nil {
		return nil, fmt.Errorf("scan latest snapshot: %w", err)
	}
	s.Data = []byte(data)
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, namespace string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	newest := builder().Select("id").
		From(entsql.Table(snapshotTable)).
		Where(entsql.EQ("namespace", namespace)).
		OrderBy(entsql.Desc("sequence"), entsql.Desc("id")).
		Limit(keep)
	query, args := builder().Delete(snapshotTable).
		Where(entsql.And(
			entsql.EQ("namespace", namespace),
			entsql.NotIn("id", newest),
		)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Count(ctx context.Context, namespace string) (int, error) {
	query, args := builder().Select().
		Count().
		From(entsql.Table(snapshotTable)).
		Where(entsql.EQ("namespace", namespace)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}
