package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brianndofor/diffhtml/internal/diff"
)

var ErrNotFound = fmt.Errorf("report not found: %w", sql.ErrNoRows)

type Report struct {
	ID         string
	Source     string
	VCS        string
	FilePrefix string
	CreatedAt  time.Time
	Added      int
	Removed    int
	Files      []diff.FileReport
	// HTML is left empty by ListReports.
	HTML string
}

// ReportID derives a stable id from the diff text and the file prefix it was
// rendered with.
func ReportID(diffText, filePrefix string) string {
	sum := sha256.Sum256([]byte(diffText + filePrefix))
	return hex.EncodeToString(sum[:])[:12]
}

// SaveReport inserts the report or replaces the one with the same id.
func (s *Store) SaveReport(r Report) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	files := r.Files
	if files == nil {
		files = []diff.FileReport{}
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to encode file reports: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO reports (id, source, vcs, file_prefix, created_at, added, removed, files_json, html)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			vcs = excluded.vcs,
			file_prefix = excluded.file_prefix,
			created_at = excluded.created_at,
			added = excluded.added,
			removed = excluded.removed,
			files_json = excluded.files_json,
			html = excluded.html
	`, r.ID, r.Source, r.VCS, r.FilePrefix, r.CreatedAt.UnixMilli(), r.Added, r.Removed, string(filesJSON), r.HTML)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *Store) GetReport(id string) (Report, error) {
	row := s.db.QueryRow(`
		SELECT id, source, vcs, file_prefix, created_at, added, removed, files_json, html
		FROM reports
		WHERE id = ?
	`, id)
	var (
		r         Report
		createdAt int64
		filesJSON string
	)
	if err := row.Scan(&r.ID, &r.Source, &r.VCS, &r.FilePrefix, &createdAt, &r.Added, &r.Removed, &filesJSON, &r.HTML); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, fmt.Errorf("failed to read report: %w", err)
	}
	r.CreatedAt = time.UnixMilli(createdAt)
	if err := json.Unmarshal([]byte(filesJSON), &r.Files); err != nil {
		return Report{}, fmt.Errorf("failed to decode file reports: %w", err)
	}
	return r, nil
}

// ListReports returns archived reports newest first, without their HTML.
func (s *Store) ListReports() ([]Report, error) {
	rows, err := s.db.Query(`
		SELECT id, source, vcs, file_prefix, created_at, added, removed, files_json
		FROM reports
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var (
			r         Report
			createdAt int64
			filesJSON string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.VCS, &r.FilePrefix, &createdAt, &r.Added, &r.Removed, &filesJSON); err != nil {
			return nil, fmt.Errorf("failed to read report: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdAt)
		if err := json.Unmarshal([]byte(filesJSON), &r.Files); err != nil {
			return nil, fmt.Errorf("failed to decode file reports: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *Store) DeleteReport(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	res, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
