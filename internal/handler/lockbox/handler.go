package lockbox

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler stores client-side encrypted blobs. The server never sees
// plaintext; payloads arrive already encrypted, base64 encoded.
type Handler struct {
	store *storage.Store
}

func New(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/lockbox", func(r chi.Router) {
		r.Post("/save", h.handleSave)
		r.Get("/list", h.handleList)
		r.Get("/{id}", h.handleGet)
	})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  int64  `json:"user_id"`
		Label   string `json:"label"`
		Encoded string `json:"encrypted_data_base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload.Encoded)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "encrypted_data_base64 is not valid base64")
		return
	}

	id, err := h.store.SaveLockbox(r.Context(), payload.UserID, payload.Label, data)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save lockbox item")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)

	items, err := h.store.ListLockbox(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list lockbox items")
		return
	}
	if items == nil {
		items = []storage.LockboxItem{}
	}

	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)

	data, err := h.store.GetLockbox(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "lockbox item not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load lockbox item")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"id":                    id,
		"encrypted_data_base64": base64.StdEncoding.EncodeToString(data),
	})
}
