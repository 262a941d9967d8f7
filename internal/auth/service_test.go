package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/auth"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/user"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	users map[string]*user.User
}

func (m *mockUserRepository) GetByUserName(userName string) (*user.User, error) {
	u, ok := m.users[userName]
	if !ok {
		return nil, internal.ErrInvalidCredentials
	}
	return u, nil
}

func (m *mockUserRepository) FindActive(id int64) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id && u.Active() {
			return u, nil
		}
	}
	return nil, internal.NotFound("AppUser")
}

type mockEmployeeRepository struct {
	byUserID map[int64]*employee.Employee
}

func (m *mockEmployeeRepository) FindActive(id int64) (*employee.Employee, error) {
	for _, emp := range m.byUserID {
		if emp.ID == id {
			return emp, nil
		}
	}
	return nil, internal.NotFound("Employee")
}

func (m *mockEmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, emp := range m.byUserID {
		out = append(out, emp)
	}
	return out, nil
}

func (m *mockEmployeeRepository) ByUserID(userID int64) (*employee.Employee, error) {
	emp, ok := m.byUserID[userID]
	if !ok {
		return nil, employee.ErrNoEmployeeProfile
	}
	return emp, nil
}

var _ = Describe("Auth Service", func() {
	var (
		users     *mockUserRepository
		employees *mockEmployeeRepository
		tokens    *auth.TokenGenerator
		svc       *auth.Service
	)

	newUser := func(id int64, userName, password, role string, active bool) *user.User {
		u := &user.User{
			Entity:   datamodel.Entity{ID: id, IsActive: active},
			UserName: userName,
			Role:     role,
		}
		Expect(u.SetPassword(password)).To(Succeed())
		return u
	}

	BeforeEach(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).NotTo(HaveOccurred())
		tokens = auth.NewTokenGenerator(key, &key.PublicKey, 15*time.Minute)

		jdoe := newUser(2, "jdoe", "password", session.RoleEmployee, true)
		inactive := newUser(3, "ghost", "password", session.RoleEmployee, false)
		orphan := newUser(4, "orphan", "password", session.RoleEmployee, true)

		users = &mockUserRepository{users: map[string]*user.User{
			"jdoe":   jdoe,
			"ghost":  inactive,
			"orphan": orphan,
		}}

		emp := &employee.Employee{
			Entity:  datamodel.Entity{ID: 20, IsActive: true},
			UserID:  2,
			Name:    "John",
			Surname: "Doe",
		}
		employees = &mockEmployeeRepository{byUserID: map[int64]*employee.Employee{2: emp}}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = auth.NewService(users, employees, tokens, logger)
	})

	Describe("Login", func() {
		It("should issue a token scoped to the caller's employee record", func() {
			resp, err := svc.Login(auth.LoginDTO{UserName: "jdoe", Password: "password"})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.TokenType).To(Equal("Bearer"))
			Expect(resp.Role).To(Equal(session.RoleEmployee))
			Expect(resp.ExpiresAt).To(BeNumerically(">", time.Now().Unix()))

			sess, err := svc.SessionFromToken(resp.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.UserID).To(Equal(int64(20)))
			Expect(sess.UserName).To(Equal("jdoe"))
			Expect(sess.Role).To(Equal(session.RoleEmployee))
		})

		It("should reject a wrong password", func() {
			_, err := svc.Login(auth.LoginDTO{UserName: "jdoe", Password: "wrong"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown username", func() {
			_, err := svc.Login(auth.LoginDTO{UserName: "nobody", Password: "password"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an inactive account", func() {
			_, err := svc.Login(auth.LoginDTO{UserName: "ghost", Password: "password"})
			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("should reject a login without an employee profile", func() {
			_, err := svc.Login(auth.LoginDTO{UserName: "orphan", Password: "password"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should require both fields", func() {
			_, err := svc.Login(auth.LoginDTO{UserName: "jdoe"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})
	})

	Describe("SessionFromToken", func() {
		It("should reject a malformed token", func() {
			_, err := svc.SessionFromToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a token signed with a different key", func() {
			otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
			Expect(err).NotTo(HaveOccurred())
			otherTokens := auth.NewTokenGenerator(otherKey, &otherKey.PublicKey, time.Minute)

			token, _, err := otherTokens.GenerateAccessToken(&session.Session{UserID: 20, UserName: "jdoe"})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.SessionFromToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("TokenGenerator", func() {
		It("should round-trip the session claims", func() {
			sess := &session.Session{UserID: 20, UserName: "jdoe", Role: session.RoleManager}

			token, expiresAt, err := tokens.GenerateAccessToken(sess)
			Expect(err).NotTo(HaveOccurred())
			Expect(expiresAt).To(BeTemporally("~", time.Now().Add(15*time.Minute), time.Minute))

			claims, err := tokens.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.EmployeeID).To(Equal(int64(20)))
			Expect(claims.UserName).To(Equal("jdoe"))
			Expect(claims.Role).To(Equal(session.RoleManager))
		})
	})
})
