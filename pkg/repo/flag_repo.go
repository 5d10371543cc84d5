package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jonboulle/clockwork"

	"github.com/EveryHotel/flag-tools/pkg/database"
	"github.com/EveryHotel/flag-tools/pkg/events"
	"github.com/EveryHotel/flag-tools/pkg/flags"
)

type FlagRepo interface {
	Get(ctx context.Context, subject uuid.UUID) (SubjectFlags, error)
	Upsert(ctx context.Context, subject uuid.UUID, f flags.Flag) (SubjectFlags, error)
	SetFlags(ctx context.Context, subject uuid.UUID, f flags.Flag) (flags.Flag, error)
	Update(ctx context.Context, entity SubjectFlags) error
	MergeFlags(ctx context.Context, subject uuid.UUID, pattern flags.Flag) (flags.Flag, error)
	RemoveFlags(ctx context.Context, subject uuid.UUID, pattern flags.Flag) (flags.Flag, error)
	ListMatching(ctx context.Context, pattern flags.Flag, options ...ListOption) ([]SubjectFlags, error)
	ListMatchingAny(ctx context.Context, patterns []flags.Flag, options ...ListOption) ([]SubjectFlags, error)
	CountMatching(ctx context.Context, pattern flags.Flag) (int64, error)
	Delete(ctx context.Context, subject uuid.UUID) error
}

type RepoOption func(*flagRepo)

// WithTableName задает таблицу хранения флагов
func WithTableName(name string) RepoOption {
	return func(r *flagRepo) {
		r.tableName = name
	}
}

// WithClock задает источник времени для timestamps
func WithClock(clock clockwork.Clock) RepoOption {
	return func(r *flagRepo) {
		r.clock = clock
	}
}

// WithDispatcher задает диспетчер событий изменения флагов
func WithDispatcher(dispatcher events.Dispatcher) RepoOption {
	return func(r *flagRepo) {
		r.dispatcher = dispatcher
	}
}

type flagRepo struct {
	db         database.DBService
	dispatcher events.Dispatcher
	clock      clockwork.Clock
	tableName  string
	alias      string
}

// NewFlagRepo возвращает репозиторий флагов субъектов
func NewFlagRepo(db database.DBService, opts ...RepoOption) FlagRepo {
	r := &flagRepo{
		db:        db,
		clock:     clockwork.NewRealClock(),
		tableName: "subject_flags",
		alias:     "sf",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Get возвращает запись флагов по субъекту
func (r *flagRepo) Get(ctx context.Context, subject uuid.UUID) (SubjectFlags, error) {
	var entity SubjectFlags

	ds := r.db.Dialect().
		Select(database.Sanitize(entity, database.WithPrefix(r.alias))...).
		From(database.GetTableName(r.tableName).As(r.alias)).
		Where(goqu.Ex{r.alias + ".subject_id": subject})

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for select",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return entity, err
	}

	row := r.db.QueryRow(ctx, query, args)
	if err = row.Scan(&entity.ID, &entity.SubjectID, &entity.Flags, &entity.CreatedAt, &entity.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity, ErrSubjectNotFound
		}

		slog.ErrorContext(ctx, "Error during exec select",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("subject", subject.String()),
		)
		return entity, err
	}

	return entity, nil
}

// Upsert сохраняет флаги субъекта, заменяя значение целиком при конфликте
func (r *flagRepo) Upsert(ctx context.Context, subject uuid.UUID, f flags.Flag) (SubjectFlags, error) {
	var saved SubjectFlags

	entity := SubjectFlags{SubjectID: subject, Flags: f}
	_, rows := SanitizeRowsForInsert(entity, r.clock)
	conflictTarget, updateFields := BuildConflictUpdate(entity, r.clock.Now())

	ds := r.db.Dialect().
		Insert(database.GetTableName(r.tableName)).
		Rows(rows).
		OnConflict(goqu.DoUpdate(conflictTarget, goqu.Record(updateFields))).
		Returning(database.Sanitize(saved)...)

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for upsert",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return saved, err
	}

	row := r.db.QueryRow(ctx, query, args)
	if err = row.Scan(&saved.ID, &saved.SubjectID, &saved.Flags, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		slog.ErrorContext(ctx, "Error during exec upsert",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("subject", subject.String()),
		)
		return saved, err
	}

	r.notify(ctx, events.FlagsSet, events.FlagsChanged{Subject: subject, Flags: saved.Flags, Pattern: f})

	return saved, nil
}

// SetFlags заменяет флаги существующего субъекта целиком и возвращает итог
func (r *flagRepo) SetFlags(ctx context.Context, subject uuid.UUID, f flags.Flag) (flags.Flag, error) {
	result, err := r.updateFlags(ctx, subject, database.SetFlagsExpr(f))
	if err != nil {
		return result, err
	}

	r.notify(ctx, events.FlagsSet, events.FlagsChanged{Subject: subject, Flags: result, Pattern: f})

	return result, nil
}

// Update обновляет запись флагов целиком по первичному ключу
func (r *flagRepo) Update(ctx context.Context, entity SubjectFlags) error {
	id, rows := SanitizeRowsForUpdate(entity, r.clock)

	ds := r.db.Dialect().
		Update(database.GetTableName(r.tableName)).
		Where(goqu.C("id").Eq(id)).
		Set(goqu.Record(rows))

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for update",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.Any("id", id),
			slog.String("sql", query),
		)
		return err
	}

	if err = r.db.Exec(ctx, query, args); err != nil {
		slog.ErrorContext(ctx, "Error during exec update",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.Any("id", id),
		)
		return err
	}

	r.notify(ctx, events.FlagsSet, events.FlagsChanged{Subject: entity.SubjectID, Flags: entity.Flags, Pattern: entity.Flags})

	return nil
}

// MergeFlags добавляет биты шаблона к флагам субъекта и возвращает итог
func (r *flagRepo) MergeFlags(ctx context.Context, subject uuid.UUID, pattern flags.Flag) (flags.Flag, error) {
	result, err := r.updateFlags(ctx, subject, database.MergeFlagsExpr("flags", pattern))
	if err != nil {
		return result, err
	}

	r.notify(ctx, events.FlagsMerged, events.FlagsChanged{Subject: subject, Flags: result, Pattern: pattern})

	return result, nil
}

// RemoveFlags гасит биты шаблона у флагов субъекта и возвращает итог
func (r *flagRepo) RemoveFlags(ctx context.Context, subject uuid.UUID, pattern flags.Flag) (flags.Flag, error) {
	result, err := r.updateFlags(ctx, subject, database.RemoveFlagsExpr("flags", pattern))
	if err != nil {
		return result, err
	}

	r.notify(ctx, events.FlagsRemoved, events.FlagsChanged{Subject: subject, Flags: result, Pattern: pattern})

	return result, nil
}

func (r *flagRepo) updateFlags(ctx context.Context, subject uuid.UUID, flagsExpr exp.LiteralExpression) (flags.Flag, error) {
	var result flags.Flag

	ds := r.db.Dialect().
		Update(database.GetTableName(r.tableName)).
		Set(goqu.Record{
			"flags":      flagsExpr,
			"updated_at": r.clock.Now(),
		}).
		Where(goqu.Ex{"subject_id": subject}).
		Returning(goqu.C("flags"))

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for update",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return result, err
	}

	row := r.db.QueryRow(ctx, query, args)
	if err = row.Scan(&result); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result, ErrSubjectNotFound
		}

		slog.ErrorContext(ctx, "Error during exec update",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("subject", subject.String()),
		)
		return result, err
	}

	return result, nil
}

// ListMatching возвращает записи, флаги которых содержат все биты шаблона
func (r *flagRepo) ListMatching(ctx context.Context, pattern flags.Flag, options ...ListOption) ([]SubjectFlags, error) {
	return r.listByCondition(ctx, database.FlagsContain(r.alias+".flags", pattern), options...)
}

// ListMatchingAny возвращает записи, флаги которых содержат хотя бы один шаблон целиком
func (r *flagRepo) ListMatchingAny(ctx context.Context, patterns []flags.Flag, options ...ListOption) ([]SubjectFlags, error) {
	return r.listByCondition(ctx, database.FlagsContainAny(r.alias+".flags", patterns...), options...)
}

func (r *flagRepo) listByCondition(ctx context.Context, condition exp.Expression, options ...ListOption) ([]SubjectFlags, error) {
	optHandler := NewListOptionHandler()
	for _, opt := range options {
		opt(optHandler)
	}

	ds := r.db.Dialect().
		Select(database.Sanitize(SubjectFlags{}, database.WithPrefix(r.alias))...).
		From(database.GetTableName(r.tableName).As(r.alias)).
		Where(condition)

	if len(optHandler.Sort) > 0 {
		ds = ds.Order(optHandler.Sort...)
	}

	if optHandler.Limit > 0 {
		ds = ds.Limit(uint(optHandler.Limit))
	}

	if optHandler.Offset > 0 {
		ds = ds.Offset(uint(optHandler.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for select",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		slog.ErrorContext(ctx, "Error during exec select",
			slog.Any("error", err),
			slog.String("table", r.tableName),
		)
		return nil, err
	}
	defer rows.Close()

	var res []SubjectFlags
	for rows.Next() {
		var entity SubjectFlags
		if err = rows.Scan(&entity.ID, &entity.SubjectID, &entity.Flags, &entity.CreatedAt, &entity.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subject flags: %w", err)
		}

		res = append(res, entity)
	}

	return res, rows.Err()
}

// CountMatching возвращает число записей, флаги которых содержат все биты шаблона
func (r *flagRepo) CountMatching(ctx context.Context, pattern flags.Flag) (int64, error) {
	ds := r.db.Dialect().
		From(database.GetTableName(r.tableName).As(r.alias)).
		Select(goqu.COUNT(goqu.Star())).
		Where(database.FlagsContain(r.alias+".flags", pattern))

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for count",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return 0, err
	}

	return r.db.Count(ctx, query, args)
}

// Delete удаляет запись флагов субъекта
func (r *flagRepo) Delete(ctx context.Context, subject uuid.UUID) error {
	ds := r.db.Dialect().
		Delete(database.GetTableName(r.tableName)).
		Where(goqu.Ex{"subject_id": subject})

	query, args, err := ds.ToSQL()
	if err != nil {
		slog.ErrorContext(ctx, "Cannot build SQL query for delete",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("sql", query),
		)
		return err
	}

	if err = r.db.Exec(ctx, query, args); err != nil {
		slog.ErrorContext(ctx, "Error during exec query for delete",
			slog.Any("error", err),
			slog.String("table", r.tableName),
			slog.String("subject", subject.String()),
		)
		return err
	}

	r.notify(ctx, events.SubjectDeleted, events.FlagsChanged{Subject: subject})

	return nil
}

func (r *flagRepo) notify(ctx context.Context, name events.EventName, event events.FlagsChanged) {
	if r.dispatcher == nil {
		return
	}

	if err := r.dispatcher.Dispatch(ctx, name, event); err != nil {
		slog.ErrorContext(ctx, "Cannot dispatch flags event",
			slog.Any("error", err),
			slog.String("event", string(name)),
			slog.String("subject", event.Subject.String()),
		)
	}
}
