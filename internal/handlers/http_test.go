package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/abrezinsky/scoreboard/internal/errors"
	"github.com/abrezinsky/scoreboard/internal/handlers"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/services"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *handlers.APIError
		status int
		code   string
	}{
		{"BadRequest", handlers.BadRequest("bad"), http.StatusBadRequest, "BAD_REQUEST"},
		{"Unauthorized", handlers.Unauthorized("login required"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"NotFound", handlers.NotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"Conflict", handlers.Conflict("taken"), http.StatusConflict, "CONFLICT"},
		{"ErrBadRequest", handlers.ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"ErrNotFound", handlers.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"ErrInternalServer", handlers.ErrInternalServer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.Status)
			}
			if tt.err.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, tt.err.Code)
			}
		})
	}
}

func TestInternalError_HidesMessage(t *testing.T) {
	err := handlers.InternalError(fmt.Errorf("db connection failed"))

	if err.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.Status)
	}
	if err.Message != "Internal server error" {
		t.Errorf("expected generic message, got %q", err.Message)
	}
}

func TestToAPIError_DirectTests(t *testing.T) {
	tests := []struct {
		name           string
		inputErr       error
		expectedStatus int
		expectedMsg    string
		expectedCode   string
	}{
		{
			name:           "NotFoundError",
			inputErr:       errors.NotFound("result not found"),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "result not found",
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "ValidationError",
			inputErr:       errors.Validation("unknown grade"),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "unknown grade",
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "InvalidInputError",
			inputErr:       &errors.Error{Kind: errors.ErrInvalidInput, Message: "invalid input"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid input",
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "ConflictError",
			inputErr:       errors.Conflict("programme already has a result"),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "programme already has a result",
			expectedCode:   "CONFLICT",
		},
		{
			name:           "WrappedNotFound",
			inputErr:       fmt.Errorf("loading: %w", errors.NotFound("programme missing")),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "programme missing",
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "InternalError_DefaultCase",
			inputErr:       &errors.Error{Kind: errors.ErrInternal, Message: "internal error"},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:           "ServiceError",
			inputErr:       &services.ServiceError{Message: "service error"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "service error",
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "UnknownDimension",
			inputErr:       services.ErrUnknownDimension,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    services.ErrUnknownDimension.Message,
			expectedCode:   "INVALID_QUERY",
		},
		{
			name:           "NoWinners",
			inputErr:       services.ErrNoWinners,
			expectedStatus: http.StatusConflict,
			expectedMsg:    services.ErrNoWinners.Message,
			expectedCode:   "NO_WINNERS",
		},
		{
			name:           "NoPublicURL",
			inputErr:       services.ErrNoPublicURL,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    services.ErrNoPublicURL.Message,
			expectedCode:   "NOT_CONFIGURED",
		},
		{
			name:           "InvalidTableError",
			inputErr:       &services.InvalidTableError{Table: "bad_table"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid table name: bad_table",
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "DuplicateRecord",
			inputErr:       fmt.Errorf("upsert result: %w", repository.ErrDuplicate),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "record already exists",
			expectedCode:   "CONFLICT",
		},
		{
			name:           "GenericError",
			inputErr:       fmt.Errorf("generic error"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tt.inputErr)

			if apiErr.Status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, apiErr.Status)
			}
			if apiErr.Message != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, apiErr.Message)
			}
			if apiErr.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, apiErr.Code)
			}
		})
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/teams", "", true)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty body, got %d", rec.Code)
	}
	if !strings.Contains(strings.ToLower(rec.Body.String()), "empty") {
		t.Errorf("expected error to mention 'empty', got %q", rec.Body.String())
	}
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/teams", "{invalid}", true)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "JSON") {
		t.Errorf("expected error to mention 'JSON', got %q", rec.Body.String())
	}
}

func TestToAPIError_DatabaseClosed(t *testing.T) {
	setup := newTestSetup(t)
	setup.repo.DB().Close()

	rec := setup.do(t, http.MethodGet, "/api/admin/teams", "", true)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for internal error, got %d", rec.Code)
	}
}

func TestRespondError_JSONShape(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/api/admin/results/nope", "", true)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"code":"NOT_FOUND"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
