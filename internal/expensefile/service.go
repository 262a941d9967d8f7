package expensefile

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

type Service struct {
	repo      RepositoryAPI
	parents   ParentExpenses
	committer audit.Committer
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, parents ParentExpenses, committer audit.Committer, logger *slog.Logger) *Service {
	return &Service{repo: repo, parents: parents, committer: committer, logger: logger}
}

// Upload reads the whole content before persisting; the stored size comes
// from the bytes actually read, never from client metadata.
func (s *Service) Upload(sess *session.Session, expenseID int64, fileName string, content io.Reader) (*ExpenseFile, error) {
	if err := s.parents.EnsureActive(expenseID); err != nil {
		return nil, err
	}

	fileType, err := ClassifyFileName(fileName)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	file := &ExpenseFile{
		ExpenseID: expenseID,
		FileName:  fileName,
		FileType:  fileType,
		FileSize:  int64(len(data)),
		FileData:  data,
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(file)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to upload file", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.logger.Info("expense file uploaded",
		"file_id", file.ID,
		"expense_id", expenseID,
		"file_type", fileType,
		"file_size", file.FileSize)
	return file, nil
}

// Update replaces the content of an existing file while the parent expense is
// still pending. The replacement's classified type must match; swapping .jpg
// for .jpeg is allowed, swapping .jpg for .pdf is not.
func (s *Service) Update(sess *session.Session, fileID int64, fileName string, content io.Reader) (*ExpenseFile, error) {
	file, err := s.repo.FindActive(fileID)
	if err != nil {
		return nil, err
	}

	pending, err := s.parents.IsPending(file.ExpenseID)
	if err != nil {
		return nil, err
	}
	if !pending {
		return nil, internal.NewValidationError(
			"Only files belonging to pending expenses can be updated",
			internal.ErrCodeInvalidExpenseStatus)
	}

	fileType, err := ClassifyFileName(fileName)
	if err != nil {
		return nil, err
	}
	if fileType != file.FileType {
		return nil, internal.NewValidationError(
			"File extension cannot be changed",
			internal.ErrCodeExtensionChange)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	snap := audit.Snapshot(file)
	file.FileName = fileName
	file.FileSize = int64(len(data))
	file.FileData = data

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(file, snap)
	if err := s.committer.Commit(rec); err != nil {
		return nil, err
	}
	return file, nil
}

// Delete is role-gated against the parent's status: employees may only remove
// files before a decision is made, managers only after.
func (s *Service) Delete(sess *session.Session, fileID int64) error {
	file, err := s.repo.FindActive(fileID)
	if err != nil {
		return err
	}

	pending, err := s.parents.IsPending(file.ExpenseID)
	if err != nil {
		return err
	}

	if sess.IsManager() {
		if pending {
			return internal.NewForbiddenError(
				"Admin cannot delete files belonging to pending expenses",
				internal.ErrCodeFileDeleteDenied)
		}
	} else if !pending {
		return internal.NewForbiddenError(
			"Employee can only delete files belonging to pending expenses",
			internal.ErrCodeFileDeleteDenied)
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(file, audit.Snapshot(file))
	return s.committer.Commit(rec)
}

func (s *Service) Get(sess *session.Session, fileID int64) (*ExpenseFile, error) {
	return s.repo.FindActive(fileID)
}

func (s *Service) ListByExpense(expenseID int64) ([]*ExpenseFile, error) {
	return s.repo.ActiveByExpense(expenseID)
}

// DeactivateForExpense records a soft delete for every active file of the
// expense, as part of the expense-delete cascade.
func (s *Service) DeactivateForExpense(rec *audit.Recorder, expenseID int64) error {
	files, err := s.repo.ActiveByExpense(expenseID)
	if err != nil {
		return err
	}
	for _, file := range files {
		rec.Deleted(file, audit.Snapshot(file))
	}
	return nil
}
