// Package whoami reports back what the server saw of the caller.
package whoami

import (
	"encoding/json"
	"net"
	"net/http"
)

// Response is the response shape for GET /whoami.
type Response struct {
	IP     string `json:"ip"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
}

// Handle handles GET /whoami.
func Handle(w http.ResponseWriter, r *http.Request) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	response := Response{
		IP:     ip,
		Method: r.Method,
		Host:   r.Host,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
