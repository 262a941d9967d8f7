// Package user holds login credentials. Profile data lives on the employee
// record; this table only answers "who can log in and as what role".
package user

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

type User struct {
	datamodel.Entity `gorm:"embedded"`

	UserName     string `gorm:"column:user_name;uniqueIndex" json:"user_name"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`
	Role         string `gorm:"column:role" json:"role"`
}

func (User) TableName() string { return "users" }

func (User) EntityName() string { return "AppUser" }

func (u *User) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "UserName", Value: u.UserName},
		{Key: "Role", Value: u.Role},
	}
	return append(values, u.BaseValues()...)
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePassword builds the initial password handed to a new employee.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

type RepositoryAPI interface {
	GetByUserName(userName string) (*User, error)
	FindActive(id int64) (*User, error)
}
