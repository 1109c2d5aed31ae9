package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Repository persists attendance records. The SQL sticks to the subset both
// Postgres and sqlite accept, so the same repository serves the web server,
// the desktop app and the tests.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new record and returns it with the assigned id.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (student_id, name, class_name, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.StudentID, rec.Name, rec.ClassName, rec.Date)
	if err := row.Scan(&rec.ID); err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

// Get returns a single record by id.
func (r *Repository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, name, class_name, date
		FROM attendance_records WHERE id = $1
	`, id)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.Name, &rec.ClassName, &rec.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Update overwrites all four fields in place, id unchanged.
func (r *Repository) Update(ctx context.Context, rec Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE attendance_records
		SET student_id = $2, name = $3, class_name = $4, date = $5
		WHERE id = $1
	`, rec.ID, rec.StudentID, rec.Name, rec.ClassName, rec.Date)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every record, newest id first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	return r.scan(ctx, `
		SELECT id, student_id, name, class_name, date
		FROM attendance_records ORDER BY id DESC
	`)
}

// Search returns records where term is a substring of student_id, name or
/// date. The match runs in Go rather than SQL LIKE: sqlite's LIKE is
// case-insensitive for ASCII, and the match must stay case-sensitive and
// identical on both engines.
func (r *Repository) Search(ctx context.Context, term string) ([]Record, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return all, nil
	}
	var res []Record
	for _, rec := range all {
		if strings.Contains(rec.StudentID, term) ||
			strings.Contains(rec.Name, term) ||
			strings.Contains(rec.Date, term) {
			res = append(res, rec)
		}
	}
	return res, nil
}

// Filter returns records for reporting, date descending. An empty className
// means no class restriction; empty bounds are open. Bounds are inclusive
// lexical string comparisons.
func (r *Repository) Filter(ctx context.Context, className, dateFrom, dateTo string) ([]Record, error) {
	query := `SELECT id, student_id, name, class_name, date FROM attendance_records`
	args := []any{}
	clauses := []string{}
	if className != "" {
		clauses = append(clauses, fmt.Sprintf("class_name = $%d", len(args)+1))
		args = append(args, className)
	}
	if dateFrom != "" {
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, dateTo)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"
	return r.scan(ctx, query, args...)
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance_records`).Scan(&n)
	return n, err
}

func (r *Repository) scan(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Name, &rec.ClassName, &rec.Date); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
