package requestlog

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamp on the first line of a record.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one request/response pair as it is handed to a Formatter.
type Entry struct {
	Time         time.Time
	Method       string
	Scheme       string
	Host         string
	Path         string
	Query        string // including the leading "?" when not empty
	IP           string
	Elapsed      time.Duration
	RequestBody  string
	ResponseBody string
}

// URL returns scheme://host/path?query as it was requested.
func (e Entry) URL() string {
	return e.Scheme + "://" + e.Host + e.Path + e.Query
}

// ElapsedMs returns the elapsed time in fractional milliseconds.
func (e Entry) ElapsedMs() float64 {
	return float64(e.Elapsed) / float64(time.Millisecond)
}

// Formatter turns an Entry into the text handed to the logger.
type Formatter func(Entry) string

// Format is the default Formatter:
//
//	[2024-01-15 10:23:45][GET]  https://example.com/api/users?id=1
//	IP: 127.0.0.1
//	TimeConsuming: 12.345ms
//	Request: {"filter":"active"}
//	Response: {"status":"ok","data":[]}
func Format(e Entry) string {
	var sb strings.Builder
	sb.WriteString("[" + e.Time.Local().Format(TimestampLayout) + "][" + e.Method + "]  " + e.URL() + "\n")
	sb.WriteString("IP: " + e.IP + "\n")
	sb.WriteString("TimeConsuming: " + strconv.FormatFloat(e.ElapsedMs(), 'f', -1, 64) + "ms\n")
	sb.WriteString("Request: " + e.RequestBody + "\n")
	sb.WriteString("Response: " + e.ResponseBody)
	return sb.String()
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// flatten trims surrounding whitespace and drops every CR and LF, so a
// body always fits on one line of the record.
func flatten(b []byte) string {
	return lineBreaks.Replace(strings.TrimSpace(string(b)))
}
