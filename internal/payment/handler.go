package payment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-tracking/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Repo RepositoryAPI
}

func NewHandler(base *transport.BaseHandler, repo RepositoryAPI) *Handler {
	return &Handler{BaseHandler: base, Repo: repo}
}

// History lists every payment attempt for an expense, declined ones included.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	histories, err := h.Repo.GetByExpenseID(expenseID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, histories)
}
