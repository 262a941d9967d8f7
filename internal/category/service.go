package category

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

func (s *Service) GetAll() ([]*ExpenseCategory, error) {
	return s.repo.GetAll()
}

func (s *Service) GetByID(id int64) (*ExpenseCategory, error) {
	return s.repo.FindActive(id)
}

func (s *Service) Create(sess *session.Session, dto CategoryDTO) (*ExpenseCategory, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	cat := &ExpenseCategory{Name: dto.Name, Description: dto.Description}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(cat)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", cat.ID, "name", cat.Name)
	return cat, nil
}

func (s *Service) Update(sess *session.Session, id int64, dto CategoryDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	cat, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	snap := audit.Snapshot(cat)
	cat.Name = dto.Name
	cat.Description = dto.Description

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(cat, snap)
	return s.committer.Commit(rec)
}

func (s *Service) Delete(sess *session.Session, id int64) error {
	cat, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	snap := audit.Snapshot(cat)
	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(cat, snap)
	return s.committer.Commit(rec)
}
