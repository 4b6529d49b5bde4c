package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // mysql dialect
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // postgres dialect
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // sqlite3 dialect
	"github.com/pkg/errors"

	"github.com/iliyamo/hbnb/internal/model"
)

// Schema describes how an entity maps onto its table. Columns lists the
// attributes GetByAttribute may filter on.
type Schema[T any] struct {
	Table   string
	Columns []string
	Links   *Links[T]
}

// Links describes a many-to-many junction whose rows are owned by the
// entity and written in the same transaction as the entity row.
type Links[T any] struct {
	Table        string
	OwnerColumn  string
	TargetColumn string
	Get          func(*T) []string
	Set          func(*T, []string)
}

// SQL is a Repository backed by a relational table. Queries are built with
// goqu for the configured dialect; every mutating call runs in its own
// transaction and commits before returning.
type SQL[T any, P entityPtr[T]] struct {
	db     *goqu.Database
	schema Schema[T]
	now    func() time.Time
}

// NewSQL wraps db for the given dialect ("mysql", "sqlite3", "postgres").
func NewSQL[T any, P entityPtr[T]](db *goqu.Database, schema Schema[T]) *SQL[T, P] {
	return &SQL[T, P]{db: db, schema: schema, now: time.Now}
}

// NewSQLStore returns a Store over db using the tables created by the
// database migrations.
func NewSQLStore(db *sql.DB, dialect string) Store {
	gdb := goqu.New(dialect, db)
	return Store{
		Users:     NewSQL[model.User](gdb, userSchema),
		Amenities: NewSQL[model.Amenity](gdb, amenitySchema),
		Places:    NewSQL[model.Place](gdb, placeSchema),
		Reviews:   NewSQL[model.Review](gdb, reviewSchema),
	}
}

func (r *SQL[T, P]) Add(ctx context.Context, entity *T) error {
	id := P(entity).GetID()
	return r.withTx(ctx, func(tx *goqu.TxDatabase) error {
		n, err := tx.From(r.schema.Table).Prepared(true).
			Where(goqu.C("id").Eq(id)).CountContext(ctx)
		if err != nil {
			return errors.Wrapf(err, "count %s", r.schema.Table)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		if _, err := tx.Insert(r.schema.Table).Prepared(true).
			Rows(*entity).Executor().ExecContext(ctx); err != nil {
			return classify(err, "insert "+r.schema.Table)
		}
		return r.writeLinks(ctx, tx, entity, false)
	})
}

func (r *SQL[T, P]) Get(ctx context.Context, id string) (*T, error) {
	var row T
	found, err := r.db.From(r.schema.Table).Prepared(true).
		Where(goqu.C("id").Eq(id)).ScanStructContext(ctx, &row)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", r.schema.Table)
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := r.loadLinks(ctx, r.db, []*T{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SQL[T, P]) GetAll(ctx context.Context) ([]*T, error) {
	var rows []T
	err := r.db.From(r.schema.Table).Prepared(true).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", r.schema.Table)
	}
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	if err := r.loadLinks(ctx, r.db, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQL[T, P]) Update(ctx context.Context, id string, patch Patch[T]) (*T, error) {
	var updated *T
	err := r.withTx(ctx, func(tx *goqu.TxDatabase) error {
		var stored T
		found, err := tx.From(r.schema.Table).Prepared(true).
			Where(goqu.C("id").Eq(id)).ScanStructContext(ctx, &stored)
		if err != nil {
			return errors.Wrapf(err, "select %s", r.schema.Table)
		}
		if !found {
			return ErrNotFound
		}
		if err := r.loadLinks(ctx, tx, []*T{&stored}); err != nil {
			return err
		}
		next := clone(&stored)
		patch.Apply(next)
		restoreIdentity[T](P(next), P(&stored))
		P(next).Touch(r.now())

		if _, err := tx.Update(r.schema.Table).Prepared(true).
			Set(*next).Where(goqu.C("id").Eq(id)).
			Executor().ExecContext(ctx); err != nil {
			return classify(err, "update "+r.schema.Table)
		}
		if err := r.writeLinks(ctx, tx, next, true); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SQL[T, P]) Delete(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *goqu.TxDatabase) error {
		if l := r.schema.Links; l != nil {
			if _, err := tx.Delete(l.Table).Prepared(true).
				Where(goqu.C(l.OwnerColumn).Eq(id)).Executor().ExecContext(ctx); err != nil {
				return classify(err, "delete "+l.Table)
			}
		}
		if _, err := tx.Delete(r.schema.Table).Prepared(true).
			Where(goqu.C("id").Eq(id)).Executor().ExecContext(ctx); err != nil {
			return classify(err, "delete "+r.schema.Table)
		}
		return nil
	})
}

func (r *SQL[T, P]) GetByAttribute(ctx context.Context, name string, value any) (*T, error) {
	if !r.hasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	cond := goqu.C(name).Eq(value)
	if s, ok := value.(string); ok {
		cond = goqu.Func("LOWER", goqu.C(name)).Eq(strings.ToLower(s))
	}
	var row T
	found, err := r.db.From(r.schema.Table).Prepared(true).
		Where(cond).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		Limit(1).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s by %s", r.schema.Table, name)
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := r.loadLinks(ctx, r.db, []*T{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SQL[T, P]) hasColumn(name string) bool {
	for _, c := range r.schema.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (r *SQL[T, P]) withTx(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// linkRow is one junction row, aliased to fixed column names.
type linkRow struct {
	OwnerID  string `db:"owner_id"`
	TargetID string `db:"target_id"`
}

// scanner is the read side shared by *goqu.Database and *goqu.TxDatabase.
type scanner interface {
	From(from ...interface{}) *goqu.SelectDataset
}

func (r *SQL[T, P]) loadLinks(ctx context.Context, q scanner, rows []*T) error {
	l := r.schema.Links
	if l == nil || len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = P(row).GetID()
	}
	var links []linkRow
	err := q.From(l.Table).Prepared(true).
		Select(goqu.C(l.OwnerColumn).As("owner_id"), goqu.C(l.TargetColumn).As("target_id")).
		Where(goqu.C(l.OwnerColumn).In(ids)).
		Order(goqu.C(l.OwnerColumn).Asc(), goqu.C("position").Asc()).
		ScanStructsContext(ctx, &links)
	if err != nil {
		return errors.Wrapf(err, "select %s", l.Table)
	}
	byOwner := make(map[string][]string, len(rows))
	for _, lr := range links {
		byOwner[lr.OwnerID] = append(byOwner[lr.OwnerID], lr.TargetID)
	}
	for _, row := range rows {
		l.Set(row, byOwner[P(row).GetID()])
	}
	return nil
}

func (r *SQL[T, P]) writeLinks(ctx context.Context, tx *goqu.TxDatabase, entity *T, replace bool) error {
	l := r.schema.Links
	if l == nil {
		return nil
	}
	id := P(entity).GetID()
	if replace {
		if _, err := tx.Delete(l.Table).Prepared(true).
			Where(goqu.C(l.OwnerColumn).Eq(id)).Executor().ExecContext(ctx); err != nil {
			return classify(err, "delete "+l.Table)
		}
	}
	targets := l.Get(entity)
	if len(targets) == 0 {
		return nil
	}
	rows := make([]interface{}, 0, len(targets))
	for i, target := range targets {
		rows = append(rows, goqu.Record{
			l.OwnerColumn:  id,
			l.TargetColumn: target,
			"position":     i,
		})
	}
	if _, err := tx.Insert(l.Table).Prepared(true).
		Rows(rows...).Executor().ExecContext(ctx); err != nil {
		return classify(err, "insert "+l.Table)
	}
	return nil
}
