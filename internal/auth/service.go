package auth

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/user"
)

type Service struct {
	users     user.RepositoryAPI
	employees employee.RepositoryAPI
	tokens    *TokenGenerator
	logger    *slog.Logger
}

func NewService(users user.RepositoryAPI, employees employee.RepositoryAPI, tokens *TokenGenerator, logger *slog.Logger) *Service {
	return &Service{users: users, employees: employees, tokens: tokens, logger: logger}
}

// Login verifies credentials and issues an access token scoped to the
// caller's employee record.
func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.users.GetByUserName(dto.UserName)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !u.CheckPassword(dto.Password) {
		return nil, internal.ErrInvalidCredentials
	}
	if !u.Active() {
		return nil, internal.ErrUserInactive
	}

	emp, err := s.employees.ByUserID(u.ID)
	if err != nil {
		s.logger.Error("login without employee profile", "user_name", u.UserName)
		return nil, internal.ErrInvalidCredentials
	}

	sess := &session.Session{
		UserID:   emp.ID,
		UserName: u.UserName,
		Role:     u.Role,
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(sess)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_name", u.UserName, "role", u.Role)
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		Role:        u.Role,
	}, nil
}

// SessionFromToken validates the token and rebuilds the caller session.
func (s *Service) SessionFromToken(tokenString string) (*session.Session, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &session.Session{
		UserID:   claims.EmployeeID,
		UserName: claims.UserName,
		Role:     claims.Role,
	}, nil
}
