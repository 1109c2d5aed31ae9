package record

import (
	"context"
	"fmt"
	"strings"
)

// Service holds the attendance business logic shared by the web and desktop
// adapters. It keeps no state between calls; every operation goes to the
// repository.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns every record, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	return s.repo.ListAll(ctx)
}

// Search returns records where term is a case-sensitive substring of
// student id, name or date. An empty term is equivalent to ListAll.
func (s *Service) Search(ctx context.Context, term string) ([]Record, error) {
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

// Get returns a single record by id.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new record.
func (s *Service) Create(ctx context.Context, studentID, name, className, date string) (Record, error) {
	rec, err := validated(studentID, name, className, date)
	if err != nil {
		return Record{}, err
	}
	return s.repo.Insert(ctx, rec)
}

// Update overwrites all four fields of an existing record.
func (s *Service) Update(ctx context.Context, id int64, studentID, name, className, date string) (Record, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Record{}, err
	}
	rec, err := validated(studentID, name, className, date)
	if err != nil {
		return Record{}, err
	}
	rec.ID = id
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete removes a record by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Report returns records filtered for reporting, date descending.
// classFilter of "all" (or empty) means no class restriction; empty date
// bounds are open ends.
func (s *Service) Report(ctx context.Context, classFilter, dateFrom, dateTo string) ([]Record, error) {
	if classFilter == ReportAllClasses {
		classFilter = ""
	}
	return s.repo.Filter(ctx, classFilter, strings.TrimSpace(dateFrom), strings.TrimSpace(dateTo))
}

func validated(studentID, name, className, date string) (Record, error) {
	rec := Record{
		StudentID: strings.TrimSpace(studentID),
		Name:      strings.TrimSpace(name),
		ClassName: strings.TrimSpace(className),
		Date:      strings.TrimSpace(date),
	}
	var missing []string
	if rec.StudentID == "" {
		missing = append(missing, "student id")
	}
	if rec.Name == "" {
		missing = append(missing, "name")
	}
	if rec.ClassName == "" {
		missing = append(missing, "class")
	}
	if rec.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return Record{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return rec, nil
}
