package openaicompat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rhuss/aibackend/pkg/api"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// MapHTTPError turns a non-2xx completion response into a server_error.
// Every backend failure is a dependency failure for the caller, so the
// status code only shapes the message: "backend returned HTTP <code>: <detail>",
// where detail is the backend's own error message when it sent one.
func MapHTTPError(resp *http.Response) *api.APIError {
	detail := ExtractErrorMessage(resp.Body)
	if detail == "" {
		detail = statusDetail(resp.StatusCode)
	}
	return api.NewServerError(fmt.Sprintf("backend returned HTTP %d: %s", resp.StatusCode, detail))
}

func statusDetail(code int) string {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "authentication failed"
	case code == http.StatusTooManyRequests:
		return "rate limit exceeded"
	case code >= http.StatusInternalServerError:
		return "server error"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "unexpected status"
}

// MapNetworkError reports a completion call that never got an HTTP answer
// (refused connection, DNS failure, timeout, cancelled context).
func MapNetworkError(err error) *api.APIError {
	return api.NewServerError("backend connection error: " + err.Error())
}

// ExtractErrorMessage reads an OpenAI-style error body and returns its
// message, or "" when the body carries none.
func ExtractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp ChatErrorResponse
	if json.Unmarshal(data, &errResp) != nil {
		return ""
	}
	return errResp.Error.Message
}
