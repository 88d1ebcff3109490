package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/opeyemi/lenddesk/internal/domain"
	"github.com/opeyemi/lenddesk/internal/store"
)

// UserService is the slice of the service layer the handlers depend on.
type UserService interface {
	GetUsers(ctx context.Context, p domain.Pagination, f domain.Filter, s domain.Sort) (domain.UserPage, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.User, error)
	GetOrganizations(ctx context.Context) ([]string, error)
	GetStatistics(ctx context.Context) (domain.Statistics, error)
	ClearCache()
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service UserService
	records store.RecordStore
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc UserService, records store.RecordStore) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
		records: records,
	}
}

func (h *APIHandlers) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	pagination := domain.Pagination{
		Page:  parseInt(query.Get("page"), domain.DefaultPage),
		Limit: parseInt(query.Get("limit"), domain.DefaultLimit),
	}
	filter := domain.Filter{
		Organization: query.Get("organization"),
		Username:     query.Get("username"),
		Email:        query.Get("email"),
		PhoneNumber:  query.Get("phoneNumber"),
		Date:         query.Get("date"),
	}
	if status := query.Get("status"); status != "" {
		filter.Status = domain.Status(status)
		if !filter.Status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}
	sorting := domain.Sort{
		Field:     query.Get("sortField"),
		Direction: domain.SortDirection(query.Get("sortOrder")),
	}

	page, err := h.service.GetUsers(r.Context(), pagination, filter, sorting)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// handleUserSubtree routes /users/{id} and /users/{id}/status.
func (h *APIHandlers) handleUserSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/status"); ok {
		h.updateUserStatus(w, r, id)
		return
	}
	if strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}
	h.getUserByID(w, r, rest)
}

func (h *APIHandlers) getUserByID(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch user", "error", err, "userId", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *APIHandlers) updateUserStatus(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, http.MethodPatch)
		return
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var payload statusUpdateRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := domain.Status(payload.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.logger.Error("failed to update user status", "error", err, "userId", id)
		writeError(w, http.StatusInternalServerError, "failed to update user status")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *APIHandlers) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	orgs, err := h.service.GetOrganizations(r.Context())
	if err != nil {
		h.logger.Error("failed to list organizations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}

	respondJSON(w, http.StatusOK, organizationsResponse{Organizations: orgs})
}

func (h *APIHandlers) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		h.logger.Error("failed to compute statistics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *APIHandlers) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	h.service.ClearCache()
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecords exposes the locally persisted records: the dashboard uses
// them to review and reset offline edits.
func (h *APIHandlers) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := h.records.GetAllUsers(r.Context())
		if err != nil {
			h.logger.Error("failed to enumerate stored records", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to enumerate stored records")
			return
		}
		if users == nil {
			users = []domain.User{}
		}
		respondJSON(w, http.StatusOK, map[string]any{"users": users})
	case http.MethodDelete:
		if err := h.records.ClearAll(r.Context()); err != nil {
			h.logger.Error("failed to clear stored records", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to clear stored records")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

// --- Request & Response DTOs ---

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type organizationsResponse struct {
	Organizations []string `json:"organizations"`
}

// --- Helpers ---

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
