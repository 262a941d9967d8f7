package expense

import (
	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/category"
	"github.com/frahmantamala/expense-tracking/internal/paymentmethod"
)

// References validates category and payment-method ids against the live
// tables.
type References struct {
	categories category.RepositoryAPI
	methods    paymentmethod.RepositoryAPI
}

func NewReferences(categories category.RepositoryAPI, methods paymentmethod.RepositoryAPI) *References {
	return &References{categories: categories, methods: methods}
}

func (r *References) CategoryActive(id int64) error {
	_, err := r.categories.FindActive(id)
	return err
}

func (r *References) PaymentMethodActive(id int64) error {
	_, err := r.methods.FindActive(id)
	return err
}

// StatusGateway exposes parent-expense checks to the file lifecycle without
// the file package depending on this one.
type StatusGateway struct {
	repo RepositoryAPI
}

func NewStatusGateway(repo RepositoryAPI) *StatusGateway {
	return &StatusGateway{repo: repo}
}

func (g *StatusGateway) EnsureActive(expenseID int64) error {
	exp, err := g.repo.GetByID(expenseID)
	if err != nil {
		return err
	}
	if !exp.Active() {
		return internal.Inactive("Expense")
	}
	return nil
}

func (g *StatusGateway) IsPending(expenseID int64) (bool, error) {
	exp, err := g.repo.GetByID(expenseID)
	if err != nil {
		return false, err
	}
	return exp.IsPending(), nil
}
