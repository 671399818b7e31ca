package echo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json", `{"a":1}`, `{"echo":{"a":1},"bytes":7}` + "\n"},
		{"text", "hi there", `{"echo":"hi there","bytes":8}` + "\n"},
		{"empty", "", `{"echo":"","bytes":0}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handle(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestHandleTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	body := strings.NewReader(strings.Repeat("x", int(MaxBodyBytes)+1))
	Handle(rec, httptest.NewRequest(http.MethodPost, "/echo", body))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}
