package models

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProblemWrite(t *testing.T) {
	p := NewBadRequest("req_123", "bad input", []FieldError{
		{Field: "date", Message: "must be a date in YYYY-MM-DD format"},
	})

	rec := httptest.NewRecorder()
	p.Write(rec)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rid := rec.Header().Get("X-Request-Id"); rid != "req_123" {
		t.Errorf("X-Request-Id = %q", rid)
	}

	var decoded Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != ProblemTypeValidation {
		t.Errorf("type = %q", decoded.Type)
	}
	if len(decoded.Errors) != 1 || decoded.Errors[0].Field != "date" {
		t.Errorf("errors = %+v", decoded.Errors)
	}
}

func TestProblemConstructors(t *testing.T) {
	tests := []struct {
		name       string
		problem    *Problem
		wantStatus int
		wantType   string
	}{
		{"unauthorized", NewUnauthorized("r", "no token"), http.StatusUnauthorized, ProblemTypeUnauthorized},
		{"not found", NewNotFound("r", "gone"), http.StatusNotFound, ProblemTypeNotFound},
		{"conflict", NewConflict("r", "duplicate"), http.StatusConflict, ProblemTypeConflict},
		{"too many requests", NewTooManyRequests("r", "slow down"), http.StatusTooManyRequests, ProblemTypeTooManyRequests},
		{"internal", NewInternalError("r", "boom"), http.StatusInternalServerError, ProblemTypeInternal},
		{"unavailable", NewServiceUnavailable("r", "down"), http.StatusServiceUnavailable, ProblemTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.problem.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.problem.Status, tt.wantStatus)
			}
			if tt.problem.Type != tt.wantType {
				t.Errorf("type = %q, want %q", tt.problem.Type, tt.wantType)
			}
		})
	}
}

func TestProblemChaining(t *testing.T) {
	p := NewProblem(ProblemTypeInternal, "Internal server error", 500, "req_1").
		WithDetail("detail").
		WithInstance("/v1/trips/trp_1").
		WithErrors([]FieldError{{Field: "x", Message: "y"}})

	if p.Detail != "detail" || p.Instance != "/v1/trips/trp_1" || len(p.Errors) != 1 {
		t.Errorf("chained problem = %+v", p)
	}
}
