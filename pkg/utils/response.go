package utils

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// MaxErrorBody bounds how much of an error response is read.
const MaxErrorBody = 64 << 10

// EncodeJSON marshals v for a request body.
func EncodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// ExtractErrorMessage finds the human readable message in an error body.
// The API is not consistent: "message", "error" and "msg" all occur, and
// "error" is sometimes an object with its own message.
func ExtractErrorMessage(status int, body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			switch v := payload[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]interface{}:
				if m, ok := v["message"].(string); ok && m != "" {
					return m
				}
			case []interface{}:
				if msgs := joinStrings(v); msgs != "" {
					return msgs
				}
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

func joinStrings(vs []interface{}) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}
