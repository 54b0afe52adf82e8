package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"roots": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["roots"] != 3 {
		t.Errorf("body = %v", got)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.Code
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        errors.New(errors.ErrCodeNotFound, "no root %q", "findMany"),
			wantStatus: http.StatusNotFound,
			wantCode:   errors.ErrCodeNotFound,
			wantMsg:    `no root "findMany"`,
		},
		{
			name:       "wrapped bad input",
			err:        fmt.Errorf("route: %w", errors.New(errors.ErrCodeInvalidInput, "bad id")),
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
			wantMsg:    "bad id",
		},
		{
			name:       "typed error",
			err:        &errors.MalformedGraphError{Offset: 3, Reason: "truncated"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errors.ErrCodeMalformedGraph,
			wantMsg:    "malformed graph blob at offset 3: truncated",
		},
		{
			name:       "uncoded",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   errors.ErrCodeInternal,
			wantMsg:    "Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode || body.Error != tt.wantMsg {
				t.Errorf("body = %+v, want code %s msg %q", body, tt.wantCode, tt.wantMsg)
			}
		})
	}
}
