// Package employee manages staff records: profile, department membership,
// salary and the bank account expenses are paid to.
package employee

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

type Employee struct {
	datamodel.Entity `gorm:"embedded"`

	UserID       int64     `gorm:"column:user_id" json:"user_id"`
	Name         string    `gorm:"column:name" json:"name"`
	Surname      string    `gorm:"column:surname" json:"surname"`
	Email        string    `gorm:"column:email" json:"email"`
	DepartmentID int64     `gorm:"column:department_id" json:"department_id"`
	Salary       int64     `gorm:"column:salary" json:"salary"`
	IBAN         string    `gorm:"column:iban" json:"iban"`
	HireDate     time.Time `gorm:"column:hire_date" json:"hire_date"`
}

func (Employee) TableName() string { return "employees" }

func (Employee) EntityName() string { return "Employee" }

func (e *Employee) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "UserId", Value: e.UserID},
		{Key: "Name", Value: e.Name},
		{Key: "Surname", Value: e.Surname},
		{Key: "Email", Value: e.Email},
		{Key: "DepartmentId", Value: e.DepartmentID},
		{Key: "Salary", Value: e.Salary},
		{Key: "Iban", Value: e.IBAN},
		{Key: "HireDate", Value: e.HireDate},
	}
	return append(values, e.BaseValues()...)
}

// GenerateIBAN produces a Turkish-format account number: "TR" followed by 24
// digits.
func GenerateIBAN() (string, error) {
	digits := make([]byte, 24)
	ten := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return "TR" + string(digits), nil
}

type RepositoryAPI interface {
	FindActive(id int64) (*Employee, error)
	GetAll() ([]*Employee, error)
	ByUserID(userID int64) (*Employee, error)
}

// ErrNoEmployeeProfile is returned when a login has no staff record behind it.
var ErrNoEmployeeProfile = errors.New("no employee profile for user")
