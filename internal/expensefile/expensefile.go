// Package expensefile stores receipt attachments and enforces the file
// lifecycle rules: a whitelist of formats on upload, type immutability on
// update, and role-gated deletion tied to the parent expense's status.
package expensefile

import (
	"path/filepath"
	"strings"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// FileType is the classified format, not the literal extension: .jpg and
// .jpeg both classify as JPG.
type FileType string

const (
	TypePDF FileType = "PDF"
	TypeJPG FileType = "JPG"
	TypePNG FileType = "PNG"
)

// ClassifyFileName maps a file name's extension onto the whitelist. Anything
// outside it fails with "Unsupported file format".
func ClassifyFileName(name string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return TypePDF, nil
	case ".jpg", ".jpeg":
		return TypeJPG, nil
	case ".png":
		return TypePNG, nil
	}
	return "", internal.NewValidationError("Unsupported file format", internal.ErrCodeUnsupportedFileFormat)
}

type ExpenseFile struct {
	datamodel.Entity `gorm:"embedded"`

	ExpenseID int64    `gorm:"column:expense_id" json:"expense_id"`
	FileName  string   `gorm:"column:file_name" json:"file_name"`
	FileType  FileType `gorm:"column:file_type" json:"file_type"`
	FileSize  int64    `gorm:"column:file_size" json:"file_size"`
	FileData  []byte   `gorm:"column:file_data" json:"-"`
}

func (ExpenseFile) TableName() string { return "expense_files" }

func (ExpenseFile) EntityName() string { return "ExpenseFile" }

// AuditValues omits the binary content; the trail records metadata only.
func (f *ExpenseFile) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "ExpenseId", Value: f.ExpenseID},
		{Key: "FileName", Value: f.FileName},
		{Key: "FileType", Value: f.FileType},
		{Key: "FileSize", Value: f.FileSize},
	}
	return append(values, f.BaseValues()...)
}

type RepositoryAPI interface {
	FindActive(id int64) (*ExpenseFile, error)
	ActiveByExpense(expenseID int64) ([]*ExpenseFile, error)
}

// ParentExpenses exposes the two facts about the parent expense the file
// rules depend on.
type ParentExpenses interface {
	EnsureActive(expenseID int64) error
	IsPending(expenseID int64) (bool, error)
}
