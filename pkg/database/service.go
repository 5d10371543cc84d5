package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/driftprogramming/pgxpoolmock"
	"github.com/jackc/pgx/v4"
)

const CtxDbTxKey = "db_tx"

type DBService interface {
	Dialect() goqu.DialectWrapper
	Exec(ctx context.Context, query string, args []any) error
	Query(ctx context.Context, query string, args []any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args []any) pgx.Row
	Count(ctx context.Context, query string, args []any) (int64, error)
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type dbService struct {
	pool pgxpoolmock.PgxPool
}

// NewDBService возвращает новый экзмпляр сервиса БД
func NewDBService(pool pgxpoolmock.PgxPool) DBService {
	return &dbService{
		pool: pool,
	}
}

// Dialect возвращает postgres диалект для goqu
func (s *dbService) Dialect() goqu.DialectWrapper {
	return goqu.Dialect("postgres")
}

// Exec выполняет запрос
func (s *dbService) Exec(ctx context.Context, query string, args []any) (err error) {
	tx, ok := ctx.Value(CtxDbTxKey).(pgx.Tx)
	if ok {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = s.pool.Exec(ctx, query, args...)
	}

	return err
}

// Query выполняет SELECT запрос и возвращает строки для чтения
func (s *dbService) Query(ctx context.Context, query string, args []any) (pgx.Rows, error) {
	tx, ok := ctx.Value(CtxDbTxKey).(pgx.Tx)
	if ok {
		return tx.Query(ctx, query, args...)
	}

	return s.pool.Query(ctx, query, args...)
}

// QueryRow выполняет запрос и возвращает одну строку
func (s *dbService) QueryRow(ctx context.Context, query string, args []any) pgx.Row {
	tx, ok := ctx.Value(CtxDbTxKey).(pgx.Tx)
	if ok {
		return tx.QueryRow(ctx, query, args...)
	}

	return s.pool.QueryRow(ctx, query, args...)
}

// Count выполняет COUNT запрос
func (s *dbService) Count(ctx context.Context, query string, args []any) (count int64, err error) {
	row := s.QueryRow(ctx, query, args)

	if err = row.Scan(&count); err != nil {
		return count, err
	}

	return count, nil
}

// Begin Создает транзакцию и возвращает связанный с нею контекст
func (s *dbService) Begin(ctx context.Context) (context.Context, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, CtxDbTxKey, tx)

	return ctx, nil
}

// Commit Применяет транзакцию
func (s *dbService) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(CtxDbTxKey).(pgx.Tx)
	if ok {
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
	}

	return nil
}

// Rollback Откатывает транзакцию
func (s *dbService) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(CtxDbTxKey).(pgx.Tx)
	if ok {
		return tx.Rollback(ctx)
	}

	return nil
}
