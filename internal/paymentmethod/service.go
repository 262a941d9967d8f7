package paymentmethod

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

func (s *Service) GetAll() ([]*PaymentMethod, error) {
	return s.repo.GetAll()
}

func (s *Service) Create(sess *session.Session, dto PaymentMethodDTO) (*PaymentMethod, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	method := &PaymentMethod{Name: dto.Name}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(method)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create payment method", "error", err, "name", dto.Name)
		return nil, err
	}
	return method, nil
}

func (s *Service) Update(sess *session.Session, id int64, dto PaymentMethodDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	method, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	snap := audit.Snapshot(method)
	method.Name = dto.Name

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(method, snap)
	return s.committer.Commit(rec)
}

func (s *Service) Delete(sess *session.Session, id int64) error {
	method, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(method, audit.Snapshot(method))
	return s.committer.Commit(rec)
}
