package contact

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

// OwnerValidator checks that the referenced owner exists and is active before
// a contact record is attached to it.
type OwnerValidator interface {
	EmployeeActive(id int64) error
	DepartmentActive(id int64) error
	ManagerActive(id int64) error
}

type Service struct {
	repo      RepositoryAPI
	owners    OwnerValidator
	committer audit.Committer
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, owners OwnerValidator, committer audit.Committer, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, committer: committer, logger: logger}
}

func (s *Service) validateOwner(owner Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	switch {
	case owner.EmployeeID != nil:
		return s.owners.EmployeeActive(*owner.EmployeeID)
	case owner.DepartmentID != nil:
		return s.owners.DepartmentActive(*owner.DepartmentID)
	default:
		return s.owners.ManagerActive(*owner.ManagerID)
	}
}

func (s *Service) CreateAddress(sess *session.Session, dto AddressDTO) (*Address, error) {
	owner := dto.owner()
	if err := s.validateOwner(owner); err != nil {
		return nil, err
	}

	addr := &Address{
		Owner:       owner,
		CountryCode: dto.CountryCode,
		City:        dto.City,
		District:    dto.District,
		Street:      dto.Street,
		ZipCode:     dto.ZipCode,
		IsDefault:   dto.IsDefault,
	}

	if addr.IsDefault {
		exists, err := s.repo.DefaultAddressExists(addr)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDefaultExists("address", owner.Kind())
		}
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(addr)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create address", "error", err, "owner", owner.Kind())
		return nil, err
	}

	s.logger.Info("address created", "address_id", addr.ID, "owner", owner.Kind(), "is_default", addr.IsDefault)
	return addr, nil
}

func (s *Service) UpdateAddress(sess *session.Session, id int64, dto AddressDTO) error {
	addr, err := s.repo.FindActiveAddress(id)
	if err != nil {
		return err
	}

	// Demoting or leaving non-default is always allowed; only promotion to
	// default has to pass the uniqueness guard.
	if dto.IsDefault {
		exists, err := s.repo.DefaultAddressExists(addr)
		if err != nil {
			return err
		}
		if exists {
			return ErrDefaultExists("address", addr.Kind())
		}
	}

	snap := audit.Snapshot(addr)
	addr.CountryCode = dto.CountryCode
	addr.City = dto.City
	addr.District = dto.District
	addr.Street = dto.Street
	addr.ZipCode = dto.ZipCode
	addr.IsDefault = dto.IsDefault

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(addr, snap)
	return s.committer.Commit(rec)
}

func (s *Service) DeleteAddress(sess *session.Session, id int64) error {
	addr, err := s.repo.FindActiveAddress(id)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(addr, audit.Snapshot(addr))
	return s.committer.Commit(rec)
}

func (s *Service) CreatePhone(sess *session.Session, dto PhoneDTO) (*Phone, error) {
	owner := dto.owner()
	if err := s.validateOwner(owner); err != nil {
		return nil, err
	}

	phone := &Phone{
		Owner:       owner,
		CountryCode: dto.CountryCode,
		PhoneNumber: dto.PhoneNumber,
		IsDefault:   dto.IsDefault,
	}

	if phone.IsDefault {
		exists, err := s.repo.DefaultPhoneExists(phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDefaultExists("phone", owner.Kind())
		}
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(phone)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create phone", "error", err, "owner", owner.Kind())
		return nil, err
	}

	s.logger.Info("phone created", "phone_id", phone.ID, "owner", owner.Kind(), "is_default", phone.IsDefault)
	return phone, nil
}

func (s *Service) UpdatePhone(sess *session.Session, id int64, dto PhoneDTO) error {
	phone, err := s.repo.FindActivePhone(id)
	if err != nil {
		return err
	}

	if dto.IsDefault {
		exists, err := s.repo.DefaultPhoneExists(phone)
		if err != nil {
			return err
		}
		if exists {
			return ErrDefaultExists("phone", phone.Kind())
		}
	}

	snap := audit.Snapshot(phone)
	phone.CountryCode = dto.CountryCode
	phone.PhoneNumber = dto.PhoneNumber
	phone.IsDefault = dto.IsDefault

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(phone, snap)
	return s.committer.Commit(rec)
}

func (s *Service) DeletePhone(sess *session.Session, id int64) error {
	phone, err := s.repo.FindActivePhone(id)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Deleted(phone, audit.Snapshot(phone))
	return s.committer.Commit(rec)
}

// DeactivateForEmployee records a soft delete for every active contact record
// of the employee, as part of the employee-delete cascade.
func (s *Service) DeactivateForEmployee(rec *audit.Recorder, employeeID int64) error {
	addresses, err := s.repo.ActiveAddressesByEmployee(employeeID)
	if err != nil {
		return err
	}
	for _, addr := range addresses {
		rec.Deleted(addr, audit.Snapshot(addr))
	}

	phones, err := s.repo.ActivePhonesByEmployee(employeeID)
	if err != nil {
		return err
	}
	for _, phone := range phones {
		rec.Deleted(phone, audit.Snapshot(phone))
	}
	return nil
}
