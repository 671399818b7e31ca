package requestlog

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// responseCapture holds the status and body a handler writes until the
// middleware commits them to the real writer. Once the handler flushes or
// hijacks, the response has started: buffered data is committed and every
// later write goes straight through.
type responseCapture struct {
	w           http.ResponseWriter
	buf         bytes.Buffer
	status      int
	wroteHeader bool
	started     bool
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{w: w}
}

// writer returns the http.ResponseWriter handed to the downstream handler.
// It keeps whatever optional interfaces the real writer implements.
func (c *responseCapture) writer() http.ResponseWriter {
	return httpsnoop.Wrap(c.w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				// Informational responses go out immediately and don't
				// settle the final status.
				if c.started || (code >= 100 && code < 200 && code != http.StatusSwitchingProtocols) {
					next(code)
					return
				}
				if c.wroteHeader {
					return
				}
				// Header changes made after this point still reach the client at commit.
				c.status = code
				c.wroteHeader = true
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				if c.started {
					return next(b)
				}
				if !c.wroteHeader {
					c.status = http.StatusOK
					c.wroteHeader = true
				}
				return c.buf.Write(b)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				if c.started {
					return next(src)
				}
				if !c.wroteHeader {
					c.status = http.StatusOK
					c.wroteHeader = true
				}
				return c.buf.ReadFrom(src)
			}
		},
		Flush: func(next httpsnoop.FlushFunc) httpsnoop.FlushFunc {
			return func() {
				_ = c.commit()
				next()
			}
		},
		Hijack: func(next httpsnoop.HijackFunc) httpsnoop.HijackFunc {
			return func() (net.Conn, *bufio.ReadWriter, error) {
				_ = c.commit()
				return next()
			}
		},
	})
}

// body returns the buffered response text, or "" once the response started.
func (c *responseCapture) body() string {
	if c.started {
		return ""
	}
	return flatten(c.buf.Bytes())
}

// commit copies the buffered status and bytes to the real writer in the
// order they were written and switches to pass-through. It is safe to call
// more than once.
func (c *responseCapture) commit() error {
	if c.started {
		return nil
	}
	c.started = true
	if c.wroteHeader {
		c.w.WriteHeader(c.status)
	}
	if c.buf.Len() == 0 {
		return nil
	}
	_, err := c.buf.WriteTo(c.w)
	return err
}
