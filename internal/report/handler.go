package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/transport"
)

type ServiceAPI interface {
	Company(period Period) (*CompanyReport, error)
	Employee(employeeID int64, period Period) (*EmployeeReport, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rep, err := h.Service.Company(period)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rep)
}

// Me serves the caller's own summary.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rep, err := h.Service.Employee(sess.UserID, period)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rep)
}

// Employee serves an employee's own summary; managers may ask for anyone's.
func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}
	if !sess.IsManager() && employeeID != sess.UserID {
		h.WriteError(w, http.StatusForbidden, "you can only view your own report")
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rep, err := h.Service.Employee(employeeID, period)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rep)
}
