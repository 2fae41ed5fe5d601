package ipinfolib

import (
	"io"
	"strings"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

// payloadError extracts a message of error object. ipinfo.io uses both
// {"error": "message"} and {"error": {"title": "...", "message": "..."}}.
func payloadError(data payload) (string, bool) {
	switch value := data["error"].(type) {
	case string:
		return value, true
	case map[string]interface{}:
		obj := payload(value)

		if message := obj.str("message").UnwrapOr(""); message != "" {
			return message, true
		}

		return obj.str("title").UnwrapOr("unknown error"), true
	}

	return "", false
}

// trimScalar strips surrounding whitespaces and quotes of a field
// response.
func trimScalar(data []byte) string {
	value := strings.TrimSpace(string(data))
	value = strings.Trim(value, `"`)

	return strings.TrimSpace(value)
}
