package requestlog

import (
	"bytes"
	"io"
	"net"
	"net/http"
)

// unknownIP is logged when the transport gives no remote address.
const unknownIP = "unknown"

// rewindBody reads the whole request body and puts a fresh reader over
// the same bytes back on r, so the next handler sees the body from the
// start. If reading fails, the next handler gets the bytes that were read
// followed by the same error.
func rewindBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	orig := r.Body
	b, err := io.ReadAll(orig)
	if err != nil {
		r.Body = &replayBody{Reader: io.MultiReader(bytes.NewReader(b), errReader{err}), closer: orig}
		return b, err
	}
	r.Body = &replayBody{Reader: bytes.NewReader(b), closer: orig}
	return b, nil
}

type replayBody struct {
	io.Reader
	closer io.Closer
}

func (b *replayBody) Close() error {
	return b.closer.Close()
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

func scheme(r *http.Request) string {
	if r.URL != nil && r.URL.Scheme != "" {
		return r.URL.Scheme
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func query(r *http.Request) string {
	if r.URL == nil || r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

func path(r *http.Request) string {
	if r.URL == nil {
		return ""
	}
	return r.URL.Path
}

// clientIP strips the port from r.RemoteAddr. An address without a port is
// returned as is, an empty one as "unknown".
func clientIP(r *http.Request) string {
	if r.RemoteAddr == "" {
		return unknownIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
