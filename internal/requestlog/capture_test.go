package requestlog

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseCaptureCommitIsIdempotent(t *testing.T) {
	rec := httptest.NewRecorder()
	c := newResponseCapture(rec)
	w := c.writer()

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("created"))

	if rec.Body.Len() != 0 {
		t.Fatalf("bytes reached the client before commit: %q", rec.Body.String())
	}
	if got := c.body(); got != "created" {
		t.Errorf("body() = %q, want %q", got, "created")
	}

	if err := c.commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := c.commit(); err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if rec.Code != http.StatusCreated || rec.Body.String() != "created" {
		t.Errorf("client got %d %q, want %d %q", rec.Code, rec.Body.String(), http.StatusCreated, "created")
	}
	if got := c.body(); got != "" {
		t.Errorf("body() after commit = %q, want empty", got)
	}
}

type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestResponseCaptureHijackStartsResponse(t *testing.T) {
	rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
	c := newResponseCapture(rec)
	w := c.writer()

	hj, ok := w.(http.Hijacker)
	if !ok {
		t.Fatal("wrapped writer lost http.Hijacker")
	}
	if _, _, err := hj.Hijack(); err != nil {
		t.Fatalf("Hijack: %v", err)
	}
	if !rec.hijacked {
		t.Error("underlying Hijack not called")
	}
	if !c.started {
		t.Error("capture should be in pass-through after Hijack")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("nothing was written, client got %q", rec.Body.String())
	}
}
