package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opeyemi/lenddesk/internal/domain"
)

type apiStubService struct {
	page          domain.UserPage
	user          *domain.User
	updated       *domain.User
	updatedWith   domain.Status
	organizations []string
	statistics    domain.Statistics
	cacheCleared  bool
}

func (a *apiStubService) GetUsers(_ context.Context, p domain.Pagination, f domain.Filter, s domain.Sort) (domain.UserPage, error) {
	return a.page, nil
}

func (a *apiStubService) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	return a.user, nil
}

func (a *apiStubService) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.User, error) {
	a.updatedWith = status
	return a.updated, nil
}

func (a *apiStubService) GetOrganizations(context.Context) ([]string, error) {
	return a.organizations, nil
}

func (a *apiStubService) GetStatistics(context.Context) (domain.Statistics, error) {
	return a.statistics, nil
}

func (a *apiStubService) ClearCache() { a.cacheCleared = true }

type apiStubRecords struct {
	users   []domain.User
	cleared bool
}

func (a *apiStubRecords) GetUser(context.Context, string) (*domain.User, error) { return nil, nil }
func (a *apiStubRecords) SaveUser(context.Context, domain.User) error           { return nil }
func (a *apiStubRecords) GetAllUsers(context.Context) ([]domain.User, error)    { return a.users, nil }
func (a *apiStubRecords) ClearAll(context.Context) error {
	a.cleared = true
	return nil
}

func testHandlers(svc *apiStubService, records *apiStubRecords) *APIHandlers {
	if records == nil {
		records = &apiStubRecords{}
	}
	return NewAPIHandlers(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, records)
}

func TestHandleUsersReturnsPage(t *testing.T) {
	svc := &apiStubService{
		page: domain.UserPage{
			Users: []domain.User{{ID: "user-1", Status: domain.StatusActive}},
			Total: 500,
			Page:  2,
			Limit: 20,
		},
	}
	handlers := testHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/users?page=2&limit=20&status=Active", nil)
	rec := httptest.NewRecorder()

	handlers.handleUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload domain.UserPage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Total != 500 || payload.Page != 2 || payload.Limit != 20 {
		t.Fatalf("unexpected page envelope: %+v", payload)
	}
	if len(payload.Users) != 1 || payload.Users[0].ID != "user-1" {
		t.Fatalf("unexpected users: %+v", payload.Users)
	}
}

func TestHandleUsersRejectsInvalidStatusFilter(t *testing.T) {
	handlers := testHandlers(&apiStubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users?status=Frozen", nil)
	rec := httptest.NewRecorder()

	handlers.handleUsers(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	handlers := testHandlers(&apiStubService{user: nil}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/user-999", nil)
	rec := httptest.NewRecorder()

	handlers.handleUserSubtree(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetUserByIDFound(t *testing.T) {
	handlers := testHandlers(&apiStubService{
		user: &domain.User{ID: "user-3", Organization: "Lendsqr"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/user-3", nil)
	rec := httptest.NewRecorder()

	handlers.handleUserSubtree(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.ID != "user-3" {
		t.Fatalf("unexpected user: %+v", payload)
	}
}

func TestUpdateUserStatus(t *testing.T) {
	svc := &apiStubService{
		updated: &domain.User{ID: "user-2", Status: domain.StatusBlacklisted},
	}
	handlers := testHandlers(svc, nil)

	body := strings.NewReader(`{"status":"Blacklisted"}`)
	req := httptest.NewRequest(http.MethodPatch, "/users/user-2/status", body)
	rec := httptest.NewRecorder()

	handlers.handleUserSubtree(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.updatedWith != domain.StatusBlacklisted {
		t.Fatalf("service received status %q", svc.updatedWith)
	}
}

func TestUpdateUserStatusRejectsInvalid(t *testing.T) {
	handlers := testHandlers(&apiStubService{}, nil)

	body := strings.NewReader(`{"status":"Frozen"}`)
	req := httptest.NewRequest(http.MethodPatch, "/users/user-2/status", body)
	rec := httptest.NewRecorder()

	handlers.handleUserSubtree(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateUserStatusRequiresPatch(t *testing.T) {
	handlers := testHandlers(&apiStubService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/user-2/status", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handlers.handleUserSubtree(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestHandleOrganizations(t *testing.T) {
	handlers := testHandlers(&apiStubService{
		organizations: []string{"Irorun", "Lendsqr"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/organizations", nil)
	rec := httptest.NewRecorder()

	handlers.handleOrganizations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload organizationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Organizations) != 2 || payload.Organizations[0] != "Irorun" {
		t.Fatalf("unexpected organizations: %+v", payload.Organizations)
	}
}

func TestHandleStatistics(t *testing.T) {
	handlers := testHandlers(&apiStubService{
		statistics: domain.Statistics{
			TotalUsers:       "500",
			ActiveUsers:      "212",
			UsersWithLoans:   "1,750",
			UsersWithSavings: "10,250",
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	rec := httptest.NewRecorder()

	handlers.handleStatistics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload domain.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.UsersWithSavings != "10,250" {
		t.Fatalf("unexpected statistics: %+v", payload)
	}
}

func TestHandleClearCache(t *testing.T) {
	svc := &apiStubService{}
	handlers := testHandlers(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/cache/clear", nil)
	rec := httptest.NewRecorder()

	handlers.handleClearCache(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !svc.cacheCleared {
		t.Fatal("expected ClearCache to be invoked")
	}

	req = httptest.NewRequest(http.MethodGet, "/cache/clear", nil)
	rec = httptest.NewRecorder()
	handlers.handleClearCache(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestHandleRecords(t *testing.T) {
	records := &apiStubRecords{users: []domain.User{{ID: "user-8"}}}
	handlers := testHandlers(&apiStubService{}, records)

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	rec := httptest.NewRecorder()
	handlers.handleRecords(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/records", nil)
	rec = httptest.NewRecorder()
	handlers.handleRecords(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !records.cleared {
		t.Fatal("expected ClearAll to be invoked")
	}
}
