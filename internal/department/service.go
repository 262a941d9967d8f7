package department

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

type Service struct {
	repo      RepositoryAPI
	committer audit.Committer
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, committer audit.Committer, logger *slog.Logger) *Service {
	return &Service{repo: repo, committer: committer, logger: logger}
}

func (s *Service) GetAll() ([]*Department, error) {
	return s.repo.GetAll()
}

func (s *Service) Create(sess *session.Session, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dept := &Department{Name: dto.Name, Description: dto.Description}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(dept)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}
	return dept, nil
}

func (s *Service) Update(sess *session.Session, id int64, dto DepartmentDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dept, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	snap := audit.Snapshot(dept)
	dept.Name = dto.Name
	dept.Description = dto.Description

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(dept, snap)
	return s.committer.Commit(rec)
}

func (s *Service) Delete(sess *session.Session, id int64) error {
	dept, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(dept, audit.Snapshot(dept))
	return s.committer.Commit(rec)
}

// UnassignManager clears ManagerID on every active department managed by the
// employee, as part of the employee-delete cascade. Changes are recorded on
// the caller's recorder so the whole cascade commits atomically.
func (s *Service) UnassignManager(rec *audit.Recorder, employeeID int64) error {
	departments, err := s.repo.ManagedBy(employeeID)
	if err != nil {
		return err
	}
	for _, dept := range departments {
		snap := audit.Snapshot(dept)
		dept.ManagerID = nil
		rec.Modified(dept, snap)
	}
	return nil
}
