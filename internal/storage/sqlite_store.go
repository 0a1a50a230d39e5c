package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// SQLiteStore keeps saved evaluations in an in-memory SQLite database, which
// gives filtered and sorted listings without writing anything to disk. The
// database lives as long as the store's single connection.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the shared-cache in-memory database called name.
func OpenSQLite(name string) (*SQLiteStore, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("sqlite store: empty database name")
	}
	dsn := "file:" + url.PathEscape(name) + "?mode=memory&cache=shared"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps the memory database alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS evaluated_properties (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  business_type TEXT NOT NULL,
  grade INTEGER NOT NULL,
  spec_json TEXT NOT NULL DEFAULT '{}',
  params_json TEXT NOT NULL DEFAULT '[]',
  insights_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_evaluated_business_type ON evaluated_properties(business_type);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_evaluated_grade ON evaluated_properties(grade);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, p domain.EvaluatedProperty) error {
	spec, err := json.Marshal(p.Spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	params, err := json.Marshal(p.Analysis.AdjustedParams)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	insights, err := json.Marshal(p.Analysis.Insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO evaluated_properties
(id, name, address, business_type, grade, spec_json, params_json, insights_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		p.ID, p.Spec.Name, p.Spec.Address, p.BusinessType, p.Analysis.Grade,
		string(spec), string(params), string(insights), p.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateID
	}
	return err
}

const selectColumns = `SELECT id, business_type, grade, spec_json, params_json, insights_json, created_at FROM evaluated_properties`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluated(r rowScanner) (domain.EvaluatedProperty, error) {
	var (
		p                                  domain.EvaluatedProperty
		specJSON, paramsJSON, insightsJSON string
		created                            string
	)
	if err := r.Scan(&p.ID, &p.BusinessType, &p.Analysis.Grade, &specJSON, &paramsJSON, &insightsJSON, &created); err != nil {
		return domain.EvaluatedProperty{}, err
	}
	if err := json.Unmarshal([]byte(specJSON), &p.Spec); err != nil {
		return domain.EvaluatedProperty{}, fmt.Errorf("unmarshal spec: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &p.Analysis.AdjustedParams); err != nil {
		return domain.EvaluatedProperty{}, fmt.Errorf("unmarshal parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(insightsJSON), &p.Analysis.Insights); err != nil {
		return domain.EvaluatedProperty{}, fmt.Errorf("unmarshal insights: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return domain.EvaluatedProperty{}, fmt.Errorf("parse created_at: %w", err)
	}
	p.CreatedAt = t
	return p, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.EvaluatedProperty, error) {
	p, err := scanEvaluated(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EvaluatedProperty{}, ErrNotFound
	}
	return p, err
}

// likeEscaper makes an address filter match literally, as the memory store does.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]domain.EvaluatedProperty, int, error) {
	f = f.normalized()

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if f.BusinessType != "" {
		where = append(where, "business_type = ?")
		args = append(args, f.BusinessType)
	}
	if f.MinGrade > 0 {
		where = append(where, "grade >= ?")
		args = append(args, f.MinGrade)
	}
	if addr := strings.TrimSpace(f.Address); addr != "" {
		where = append(where, "LOWER(address) LIKE '%' || LOWER(?) || '%' ESCAPE '\\'")
		args = append(args, likeEscaper.Replace(addr))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := " ORDER BY seq"
	switch f.Sort {
	case SortGradeDesc:
		orderSQL = " ORDER BY grade DESC, seq"
	case SortGradeAsc:
		orderSQL = " ORDER BY grade ASC, seq"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM evaluated_properties"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	rows, err := s.db.QueryContext(ctx, selectColumns+whereSQL+orderSQL+" LIMIT ? OFFSET ?", rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.EvaluatedProperty, 0, f.Limit)
	for rows.Next() {
		p, err := scanEvaluated(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluated_properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluated_properties`).Scan(&n)
	return n, err
}
