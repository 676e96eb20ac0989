package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func newAPIError(resp *Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    ExtractMessage(resp.Data),
		Body:       resp.Data,
	}
}

// ExtractMessage finds a human readable message in an error body. It knows
// the shapes the API uses: {"message"}, {"error": "..."},
// {"error": {"message", "details"}}, {"detail"}, {"details"} and
// per-field lists such as {"nom": ["..."]}.
func ExtractMessage(data []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	for _, key := range []string{"message", "error", "detail", "details"} {
		raw, ok := body[key]
		if !ok {
			continue
		}
		if msg := messageFrom(raw); msg != "" {
			return msg
		}
	}

	// Field errors, sorted for a stable message
	var fields []string
	for k := range body {
		if k == "success" {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	var parts []string
	for _, k := range fields {
		if msg := messageFrom(body[k]); msg != "" {
			parts = append(parts, k+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

func messageFrom(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}

	var nested struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested.Details) > 0 {
			keys := make([]string, 0, len(nested.Details))
			for k := range nested.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, k+": "+nested.Details[k])
			}
			return strings.Join(parts, "; ")
		}
		if nested.Message != "" {
			return nested.Message
		}
	}

	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(fields[k], ", "))
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
