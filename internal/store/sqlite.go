package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS bill_lines (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id),
	position   INTEGER NOT NULL,
	line       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_bill_lines_project ON bill_lines(project_id, position);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert project %s", name)
	}
	return &Project{ID: id, Name: name, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetProject(ctx context.Context, name string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = ?`, name,
	)

	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("project not found: %s", name)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan project")
	}
	return &p, nil
}

func (s *SQLiteStore) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY created_at`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list projects")
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan project")
		}
		projects = append(projects, p)
	}
	return projects, eris.Wrap(rows.Err(), "sqlite: list projects iterate")
}

func (s *SQLiteStore) AppendLine(ctx context.Context, projectID string, line model.Line) error {
	data, err := model.MarshalLine(line)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bill_lines (id, project_id, position, line, created_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM bill_lines WHERE project_id = ?), ?, ?)`,
		uuid.New().String(), projectID, projectID, string(data), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: append line to project %s", projectID)
}

func (s *SQLiteStore) GetLines(ctx context.Context, projectID string) ([]model.Line, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT line FROM bill_lines WHERE project_id = ? ORDER BY position`,
		projectID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get lines")
	}
	defer rows.Close()

	var lines []model.Line
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan line")
		}
		line, err := model.UnmarshalLine([]byte(data))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, eris.Wrap(rows.Err(), "sqlite: get lines iterate")
}

func (s *SQLiteStore) ReplaceLines(ctx context.Context, projectID string, lines []model.Line) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace lines")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bill_lines WHERE project_id = ?`, projectID,
	); err != nil {
		return eris.Wrap(err, "sqlite: clear lines")
	}

	now := time.Now().UTC()
	for i, line := range lines {
		data, err := model.MarshalLine(line)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bill_lines (id, project_id, position, line, created_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), projectID, i+1, string(data), now,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert line %d", i)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit replace lines")
}
