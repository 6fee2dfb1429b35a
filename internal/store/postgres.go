package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// Pool abstracts pgxpool.Pool so the store can be unit tested with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bill_lines (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id),
	position   INTEGER NOT NULL,
	line       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_bill_lines_project ON bill_lines(project_id, position);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES ($1, $2, $3)`,
		id, name, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert project %s", name)
	}
	return &Project{ID: id, Name: name, CreatedAt: now}, nil
}

func (s *PostgresStore) GetProject(ctx context.Context, name string) (*Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = $1`, name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, eris.Errorf("project not found: %s", name)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get project")
	}
	return &p, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY created_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list projects")
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan project")
		}
		projects = append(projects, p)
	}
	return projects, eris.Wrap(rows.Err(), "postgres: list projects iterate")
}

func (s *PostgresStore) AppendLine(ctx context.Context, projectID string, line model.Line) error {
	data, err := model.MarshalLine(line)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO bill_lines (id, project_id, position, line, created_at)
		 VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM bill_lines WHERE project_id = $2), $3, $4)`,
		uuid.New().String(), projectID, string(data), time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: append line to project %s", projectID)
}

func (s *PostgresStore) GetLines(ctx context.Context, projectID string) ([]model.Line, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT line FROM bill_lines WHERE project_id = $1 ORDER BY position`,
		projectID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get lines")
	}
	defer rows.Close()

	var lines []model.Line
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan line")
		}
		line, err := model.UnmarshalLine(data)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, eris.Wrap(rows.Err(), "postgres: get lines iterate")
}

func (s *PostgresStore) ReplaceLines(ctx context.Context, projectID string, lines []model.Line) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace lines")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM bill_lines WHERE project_id = $1`, projectID,
	); err != nil {
		return eris.Wrap(err, "postgres: clear lines")
	}

	now := time.Now().UTC()
	for i, line := range lines {
		data, err := model.MarshalLine(line)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO bill_lines (id, project_id, position, line, created_at) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), projectID, i+1, string(data), now,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert line %d", i)
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace lines")
}
