// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger logs handler failures and renders a friendly error page in one
// call, so handlers stay short.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders a 500 page with a
// user-safe message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusInternalServerError)
	renderErrorPage(w, r, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusBadRequest)
	renderErrorPage(w, r, "Invalid request", userMsg, backURL)
}

// LogForbidden logs at warn level and renders a 403 page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusForbidden)
	renderErrorPage(w, r, "Access denied", userMsg, backURL)
}

// HTMXLogServerError is LogServerError for HTMX requests: it sends a client
// redirect header instead of rendering a full page into a partial swap.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", backURL)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	renderErrorPage(w, r, "Something went wrong", userMsg, backURL)
}

// HTMXLogBadRequest is LogBadRequest for HTMX requests.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", backURL)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	renderErrorPage(w, r, "Invalid request", userMsg, backURL)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty it falls back to the landing page.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusForbidden)
	renderErrorPage(w, r, "Access denied", msg, backURL)
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, title, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}

	templates.Render(w, r, "error_page", pageData{
		Title:      title,
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	})
}
