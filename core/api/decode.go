package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// decodeJSON classifies resp and decodes a successful JSON body into out.
// The body is always closed.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return fmt.Errorf("%w: unexpected content type %q", ErrInvalidResponse, resp.Header.Get("Content-Type"))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}
	return nil
}

// responseError builds an *Error, copying the backend message when the body is JSON.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var msg string
	if isJSON(resp.Header.Get("Content-Type")) {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			msg = payload.Message
			if msg == "" {
				msg = payload.Error
			}
		}
	} else {
		msg = strings.TrimSpace(string(body))
		if r := []rune(msg); len(r) > 100 {
			msg = string(r[:100])
		}
	}
	return newError(resp.StatusCode, msg)
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
