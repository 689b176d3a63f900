// Package models holds the values that flow between the conversion stages and
// the command line.
package models

import (
	"bytes"
	"encoding/json"
	"io"
)

// Result is the single artifact of a conversion run. A successful run carries
// the markdown (possibly empty); a failed run carries a non-empty error message.
type Result struct {
	Success  bool
	Markdown string
	Error    string
}

// Succeeded builds a successful Result.
func Succeeded(markdown string) Result {
	return Result{Success: true, Markdown: markdown}
}

// Failed builds a failed Result from err. A nil error or an empty message is
// replaced so the payload always explains itself.
func Failed(err error) Result {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result{Success: false, Error: msg}
}

type successPayload struct {
	Success  bool   `json:"success"`
	Markdown string `json:"markdown"`
}

type failurePayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r Result) payload() interface{} {
	if r.Success {
		return successPayload{Success: true, Markdown: r.Markdown}
	}
	return failurePayload{Success: false, Error: r.Error}
}

// MarshalJSON encodes the Result as {"success":true,"markdown":...} or
// {"success":false,"error":...}. HTML characters are left unescaped here; note
// that json.Marshal re-escapes them, so WriteTo is the way to emit a Result.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.payload()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes either payload variant.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success  bool   `json:"success"`
		Markdown string `json:"markdown"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Success: raw.Success, Markdown: raw.Markdown, Error: raw.Error}
	return nil
}

// WriteTo writes the Result as exactly one JSON line.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	data, err := r.MarshalJSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(append(data, '\n'))
	return int64(n), err
}
