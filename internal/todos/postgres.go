package todos

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

// The table is self-provisioned: one flat table, no migrations.
const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT      NOT NULL,
    description TEXT      NOT NULL,
    done        BOOLEAN   NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMP NOT NULL DEFAULT NOW()
)`

func newPostgres(ctx context.Context, cfg PostgresConfig, log logger.Logger) (*postgresRepo, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.WrapFail(err, "open postgres connection")
	}

	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.MaxLife)

	err = db.PingContext(ctx)
	if err != nil {
		return nil, errors.WrapFail(err, "ping postgres")
	}

	_, err = db.ExecContext(ctx, createTodosTable)
	if err != nil {
		return nil, errors.WrapFail(err, "create todos table")
	}

	return &postgresRepo{
		db:  db,
		log: log.With("postgres_todos"),
	}, nil
}

// postgresRepo delegates atomicity to the database: every operation is a
// single statement, so row semantics give the same contract as the
// in-memory mutex.
type postgresRepo struct {
	db  *sql.DB
	log logger.Logger
}

func (p *postgresRepo) List(ctx context.Context) ([]Todo, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, title, description, done FROM todos`,
	)
	if err != nil {
		return nil, errors.WrapFail(err, "select todos")
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			p.log.Warn(errors.WrapFail(err, "close rows"))
		}
	}()

	var all []Todo
	for rows.Next() {
		var t Todo
		err = rows.Scan(&t.ID, &t.Title, &t.Description, &t.Done)
		if err != nil {
			return nil, errors.WrapFail(err, "scan todo row")
		}
		all = append(all, t)
	}

	if rows.Err() != nil {
		return nil, errors.WrapFail(rows.Err(), "iterate todo rows")
	}

	return all, nil
}

func (p *postgresRepo) Get(ctx context.Context, id int64) (Todo, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT id, title, description, done FROM todos WHERE id = $1`,
		id,
	)
	return p.scanOne(row, "select todo")
}

func (p *postgresRepo) Create(ctx context.Context, spec CreateTodo) (Todo, error) {
	row := p.db.QueryRowContext(ctx,
		`INSERT INTO todos (title, description, done)
		 VALUES ($1, $2, FALSE)
		 RETURNING id, title, description, done`,
		spec.Title, spec.Description,
	)
	return p.scanOne(row, "insert todo")
}

// Update merges in the database: a column is overwritten only when the
// caller supplied a value for it, otherwise COALESCE keeps the stored one.
func (p *postgresRepo) Update(ctx context.Context, id int64, patch UpdateTodo) (Todo, error) {
	row := p.db.QueryRowContext(ctx,
		`UPDATE todos
		 SET title       = COALESCE($1::text, title),
		     description = COALESCE($2::text, description),
		     done        = COALESCE($3::boolean, done)
		 WHERE id = $4
		 RETURNING id, title, description, done`,
		patch.Title, patch.Description, patch.Done, id,
	)
	return p.scanOne(row, "update todo")
}

func (p *postgresRepo) Delete(ctx context.Context, id int64) (Todo, error) {
	row := p.db.QueryRowContext(ctx,
		`DELETE FROM todos WHERE id = $1
		 RETURNING id, title, description, done`,
		id,
	)
	return p.scanOne(row, "delete todo")
}

func (p *postgresRepo) Close(ctx context.Context) error {
	return errors.WrapFail(p.db.Close(), "close postgres connection")
}

func (p *postgresRepo) scanOne(row *sql.Row, op string) (Todo, error) {
	var t Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Done)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, ErrNotFound
	}
	if err != nil {
		return Todo{}, errors.WrapFail(err, op)
	}
	return t, nil
}
