// Package echo handles the echo endpoint, which returns the request body.
package echo

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// MaxBodyBytes caps the body the endpoint will read.
const MaxBodyBytes int64 = 1 << 20

// Response is the response shape for POST /echo.
type Response struct {
	// Echo is the body verbatim when it is valid JSON, otherwise a JSON string.
	Echo  json.RawMessage `json:"echo"`
	Bytes int             `json:"bytes"`
}

// Handle handles POST /echo.
func Handle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Reading echo body")
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	echo := json.RawMessage(body)
	if !json.Valid(body) {
		echo, _ = json.Marshal(string(body))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	json.NewEncoder(w).Encode(Response{Echo: echo, Bytes: len(body)})
}
