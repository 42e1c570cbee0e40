package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Check(ctx context.Context) error { return f(ctx) }

func TestHandleHealth(t *testing.T) {
	kv := NewKVStore(setupTestDB(t))
	down := checkerFunc(func(context.Context) error { return errors.New("unreachable") })

	tests := []struct {
		name       string
		checks     map[string]Checker
		wantStatus int
		want       map[string]string
	}{
		{
			name:       "sqlite ok",
			checks:     map[string]Checker{"sqlite": kv},
			wantStatus: http.StatusOK,
			want:       map[string]string{"sqlite": "ok"},
		},
		{
			name:       "one dependency down",
			checks:     map[string]Checker{"sqlite": kv, "other": down},
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"sqlite": "ok", "other": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handleHealth(discardLogger(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]struct{ Status string }
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			for name, want := range tt.want {
				if got := body[name].Status; got != want {
					t.Errorf("%s = %q, want %q", name, got, want)
				}
			}
		})
	}
}
