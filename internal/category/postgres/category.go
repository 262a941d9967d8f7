package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/category"
	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
)

// CategoryRepository implements category.RepositoryAPI using GORM
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(id int64) (*category.ExpenseCategory, error) {
	var cat category.ExpenseCategory
	if err := r.db.First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetAll() ([]*category.ExpenseCategory, error) {
	var cats []*category.ExpenseCategory
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) FindActive(id int64) (*category.ExpenseCategory, error) {
	return entitycheck.Find[category.ExpenseCategory](r.db, id, "Category")
}
