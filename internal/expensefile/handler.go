package expensefile

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/session"
	"github.com/frahmantamala/expense-tracking/internal/transport"
)

// maxUploadSize caps receipt attachments at 10 MiB.
const maxUploadSize = 10 << 20

type ServiceAPI interface {
	Upload(sess *session.Session, expenseID int64, fileName string, content io.Reader) (*ExpenseFile, error)
	Update(sess *session.Session, fileID int64, fileName string, content io.Reader) (*ExpenseFile, error)
	Delete(sess *session.Session, fileID int64) error
	Get(sess *session.Session, fileID int64) (*ExpenseFile, error)
	ListByExpense(expenseID int64) ([]*ExpenseFile, error)
	DeactivateForExpense(rec *audit.Recorder, expenseID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	fileName, content, err := h.formFile(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer content.Close()

	file, err := h.Service.Upload(sess, expenseID, fileName, content)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, file)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file ID")
		return
	}

	fileName, content, err := h.formFile(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer content.Close()

	file, err := h.Service.Update(sess, fileID, fileName, content)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, file)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file ID")
		return
	}

	if err := h.Service.Delete(sess, fileID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Download streams the stored bytes back with a best-effort content type.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file ID")
		return
	}

	file, err := h.Service.Get(sess, fileID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(file.FileType))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(file.FileSize, 10))
	if _, err := w.Write(file.FileData); err != nil {
		h.Logger.Error("failed to write file response", "error", err, "file_id", fileID)
	}
}

func (h *Handler) ListByExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	files, err := h.Service.ListByExpense(expenseID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, files)
}

func (h *Handler) formFile(r *http.Request) (string, io.ReadCloser, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", nil, fmt.Errorf("invalid multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file field is required")
	}
	return header.Filename, file, nil
}

func contentTypeFor(t FileType) string {
	switch t {
	case TypePDF:
		return "application/pdf"
	case TypeJPG:
		return "image/jpeg"
	case TypePNG:
		return "image/png"
	}
	return "application/octet-stream"
}
