package provider

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/carverauto/quantumdir/pkg/models"
)

// apiErrorBody is the provider's JSON error envelope. Some endpoints
// use "__type" instead of "code" for the machine-readable error name.
type apiErrorBody struct {
	Code    string `json:"code"`
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// decodeAPIError turns a non-200 response into a typed ProviderError.
// Unparseable bodies still yield a usable error from the status code.
func decodeAPIError(resp *http.Response) *models.ProviderError {
	perr := &models.ProviderError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return perr
	}

	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		if msg := strings.TrimSpace(string(body)); msg != "" {
			perr.Message = msg
		}

		return perr
	}

	perr.Code = envelope.Code
	if perr.Code == "" {
		// "__type" values can carry a namespace prefix.
		perr.Code = envelope.Type
		if idx := strings.LastIndex(perr.Code, "#"); idx >= 0 {
			perr.Code = perr.Code[idx+1:]
		}
	}

	if envelope.Message != "" {
		perr.Message = envelope.Message
	}

	return perr
}
