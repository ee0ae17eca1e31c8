package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// profileID is the primary key of the only profile row.
const profileID = 1

type profileRepo struct {
	drv *entsql.Driver
}

type profileRow struct {
	Age       int   `sql:"age"`
	UpdatedAt int64 `sql:"updated_at"`
}

func (r *profileRepo) Get(ctx context.Context) (*Profile, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(colAge, colUpdatedAt).
		From(entsql.Table(profileTable)).
		Where(entsql.EQ(colID, profileID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	defer rows.Close()

	var found []profileRow
	if err := entsql.ScanSlice(rows, &found); err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &Profile{
		Age:       found[0].Age,
		UpdatedAt: time.UnixMilli(found[0].UpdatedAt).UTC(),
	}, nil
}

func (r *profileRepo) Save(ctx context.Context, p Profile) error {
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.Age)
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(profileTable).
		Columns(colID, colAge, colUpdatedAt).
		Values(profileID, p.Age, updated.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(profileTable).
		Where(entsql.EQ(colID, profileID)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
