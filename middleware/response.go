package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/blogem/form-intake/logger"
	"github.com/blogem/form-intake/models"
)

type loggerKey struct{}

// ResponseLogger makes log available to the envelope writers of every
// request that passes through it
func ResponseLogger(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With("component", "response")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), loggerKey{}, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// responseLog returns the logger installed by ResponseLogger, or the default
// logger for requests that did not pass through it
func responseLog(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

var callbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)

// ValidCallback reports whether name is usable as a JSONP callback
func ValidCallback(name string) bool {
	return callbackPattern.MatchString(name)
}

// Callback returns the JSONP callback requested by r, or "" for plain JSON.
// ok is false when a callback was given but is not a valid identifier.
func Callback(r *http.Request) (name string, ok bool) {
	name = r.URL.Query().Get("callback")
	if name == "" {
		return "", true
	}
	return name, ValidCallback(name)
}

// Envelope writes {"status": status, ...payload}. The response is JSONP when
// the request carries a valid callback. The HTTP status is always 200.
func Envelope(w http.ResponseWriter, r *http.Request, status string, payload map[string]any) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["status"] = status

	callback, ok := Callback(r)
	if !ok {
		callback = ""
		body = map[string]any{"status": models.StatusError, "message": "invalid callback"}
	}

	data, err := json.Marshal(body)
	if err != nil {
		responseLog(r.Context()).Error("failed to encode response", logger.Err(err), "path", r.URL.Path)
		data = []byte(`{"status":"error","message":"internal server error"}`)
	}

	if callback != "" {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(callback + "("))
		w.Write(data)
		w.Write([]byte(")"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Success writes a success envelope
func Success(w http.ResponseWriter, r *http.Request, payload map[string]any) {
	Envelope(w, r, models.StatusSuccess, payload)
}

// Fail writes an error envelope carrying message
func Fail(w http.ResponseWriter, r *http.Request, message string) {
	Envelope(w, r, models.StatusError, map[string]any{"message": message})
}
