// Package stream handles the chunked streaming endpoint.
package stream

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultChunks = 5
	MaxChunks     = 1000
)

// Handler writes one line per chunk and flushes after each, so the client
// sees the response while it is still being produced.
type Handler struct {
	interval time.Duration
}

func NewHandler(interval time.Duration) *Handler {
	return &Handler{interval: interval}
}

// ServeHTTP handles GET /stream?chunks={N}.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chunks := DefaultChunks
	if raw := r.URL.Query().Get("chunks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxChunks {
			http.Error(w, "Invalid chunks. Expected 1-"+strconv.Itoa(MaxChunks), http.StatusBadRequest)
			return
		}
		chunks = n
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	rc := http.NewResponseController(w)
	for i := 1; i <= chunks; i++ {
		if i > 1 && h.interval > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(h.interval):
			}
		}
		fmt.Fprintf(w, "chunk %d/%d\n", i, chunks)
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
