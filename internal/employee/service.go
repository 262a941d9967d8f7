package employee

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/department"
	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/user"
)

// ContactCascade deactivates the employee's addresses and phones on delete.
type ContactCascade interface {
	DeactivateForEmployee(rec *audit.Recorder, employeeID int64) error
}

// DepartmentCascade unassigns the employee from departments they manage.
type DepartmentCascade interface {
	UnassignManager(rec *audit.Recorder, employeeID int64) error
}

type Service struct {
	repo        RepositoryAPI
	users       user.RepositoryAPI
	departments department.RepositoryAPI
	contacts    ContactCascade
	managed     DepartmentCascade
	committer   audit.Committer
	logger      *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	users user.RepositoryAPI,
	departments department.RepositoryAPI,
	contacts ContactCascade,
	managed DepartmentCascade,
	committer audit.Committer,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		departments: departments,
		contacts:    contacts,
		managed:     managed,
		committer:   committer,
		logger:      logger,
	}
}

// CreatedEmployee carries the one-time initial password back to the caller;
// it is never stored in plain form.
type CreatedEmployee struct {
	Employee        *Employee `json:"employee"`
	InitialPassword string    `json:"initial_password"`
}

// Create provisions the login first so the staff record can reference it,
// then commits the employee with a generated IBAN when none is supplied.
func (s *Service) Create(sess *session.Session, dto CreateEmployeeDTO) (*CreatedEmployee, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if _, err := s.departments.FindActive(dto.DepartmentID); err != nil {
		return nil, err
	}

	password, err := user.GeneratePassword(12)
	if err != nil {
		return nil, err
	}

	login := &user.User{UserName: dto.UserName, Role: session.RoleEmployee}
	if err := login.SetPassword(password); err != nil {
		return nil, err
	}

	userRec := audit.NewRecorder(sess.UserName)
	userRec.Added(login)
	if err := s.committer.Commit(userRec); err != nil {
		s.logger.Error("failed to create login", "error", err, "user_name", dto.UserName)
		return nil, err
	}

	iban := dto.IBAN
	if iban == "" {
		if iban, err = GenerateIBAN(); err != nil {
			return nil, err
		}
	}

	emp := &Employee{
		UserID:       login.ID,
		Name:         dto.Name,
		Surname:      dto.Surname,
		Email:        dto.Email,
		DepartmentID: dto.DepartmentID,
		Salary:       dto.Salary,
		IBAN:         iban,
		HireDate:     dto.HireDate,
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(emp)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create employee", "error", err, "user_name", dto.UserName)
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"user_id", login.ID,
		"department_id", emp.DepartmentID)
	return &CreatedEmployee{Employee: emp, InitialPassword: password}, nil
}

func (s *Service) Update(sess *session.Session, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	emp, err := s.repo.FindActive(id)
	if err != nil {
		return nil, err
	}

	if dto.DepartmentID > 0 && dto.DepartmentID != emp.DepartmentID {
		if _, err := s.departments.FindActive(dto.DepartmentID); err != nil {
			return nil, err
		}
	}

	snap := audit.Snapshot(emp)
	if dto.Name != "" {
		emp.Name = dto.Name
	}
	if dto.Surname != "" {
		emp.Surname = dto.Surname
	}
	if dto.Email != "" {
		emp.Email = dto.Email
	}
	if dto.DepartmentID > 0 {
		emp.DepartmentID = dto.DepartmentID
	}
	if dto.Salary > 0 {
		emp.Salary = dto.Salary
	}
	if dto.IBAN != "" {
		emp.IBAN = dto.IBAN
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(emp, snap)
	if err := s.committer.Commit(rec); err != nil {
		return nil, err
	}
	return emp, nil
}

// Delete cascades: contact records deactivate, managed departments lose their
// manager, the login closes, and the employee row soft-deletes. All of it
// commits as one batch with one audit timestamp.
func (s *Service) Delete(sess *session.Session, id int64) error {
	emp, err := s.repo.FindActive(id)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	if err := s.contacts.DeactivateForEmployee(rec, emp.ID); err != nil {
		return err
	}
	if err := s.managed.UnassignManager(rec, emp.ID); err != nil {
		return err
	}

	login, err := s.users.FindActive(emp.UserID)
	switch {
	case err == nil:
		rec.Deleted(login, audit.Snapshot(login))
	case internal.IsMissingOrInactive(err):
		// the login is already closed; nothing left to cascade
	default:
		s.logger.Error("failed to load login for delete", "error", err, "employee_id", emp.ID)
		return err
	}

	rec.Deleted(emp, audit.Snapshot(emp))
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", emp.ID)
		return err
	}

	s.logger.Info("employee deleted", "employee_id", emp.ID, "deleted_by", sess.UserName)
	return nil
}

func (s *Service) GetAll() ([]*Employee, error) {
	return s.repo.GetAll()
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	return s.repo.FindActive(id)
}

// IBANFor resolves the payout account for expense approval.
func (s *Service) IBANFor(employeeID int64) (string, error) {
	emp, err := s.repo.FindActive(employeeID)
	if err != nil {
		return "", err
	}
	return emp.IBAN, nil
}
