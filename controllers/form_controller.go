package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/form-intake/middleware"
	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/services"
	"github.com/blogem/form-intake/userctx"
)

// maxBodySize bounds POST bodies. Base64 inflates the 25MB attachment
// ceiling by a third, plus room for the form fields.
const maxBodySize = 40 << 20

// FormController handles /forms/{form} requests
type FormController struct {
	services      *services.Services
	version       string
	adminRequired bool
	log           *slog.Logger
}

// NewFormController creates a new form controller. With adminRequired the
// delete action needs a verified admin token.
func NewFormController(services *services.Services, version string, adminRequired bool, log *slog.Logger) *FormController {
	return &FormController{
		services:      services,
		version:       version,
		adminRequired: adminRequired,
		log:           log.With("component", "forms"),
	}
}

// Handle handles GET and POST /forms/{form}
func (c *FormController) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Callback(r); !ok {
		middleware.Fail(w, r, "invalid callback")
		return
	}

	form, err := c.services.Intake.Form(chi.URLParam(r, "form"))
	if err != nil {
		c.fail(w, r, err)
		return
	}

	action := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("action")))
	if action == "" {
		if r.Method == http.MethodGet {
			c.status(w, r, form)
			return
		}
		action = models.ActionAdd
	}

	if !form.Supports(action) {
		c.fail(w, r, services.UnsupportedAction(action))
		return
	}

	payload, err := readPayload(w, r)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	ctx := r.Context()

	switch action {
	case models.ActionGet:
		comments, err := c.services.Comments.List(ctx)
		if err != nil {
			c.fail(w, r, err)
			return
		}
		middleware.Success(w, r, map[string]any{"comments": comments})

	case models.ActionAdd:
		if form.Name == services.FormComments {
			comment, err := c.services.Comments.Add(ctx, payload)
			if err != nil {
				c.fail(w, r, err)
				return
			}
			middleware.Success(w, r, map[string]any{"comment": comment})
			return
		}

		sub, err := c.services.Intake.Submit(ctx, form.Name, payload)
		if err != nil {
			c.fail(w, r, err)
			return
		}
		middleware.Success(w, r, sub.Describe())

	case models.ActionLike:
		likes, err := c.services.Comments.Like(ctx, payload)
		if err != nil {
			c.fail(w, r, err)
			return
		}
		middleware.Success(w, r, map[string]any{"likes": likes})

	case models.ActionDelete:
		if _, ok := userctx.GetAdmin(ctx); c.adminRequired && !ok {
			c.fail(w, r, services.ErrUnauthorized)
			return
		}
		if err := c.services.Comments.Delete(ctx, payload); err != nil {
			c.fail(w, r, err)
			return
		}
		c.log.Info("comment deleted by admin", "admin", userctx.GetAdminEmail(ctx))
		middleware.Success(w, r, map[string]any{"success": true})

	default:
		c.fail(w, r, services.UnsupportedAction(action))
	}
}

// status answers a GET without an action with the form's liveness payload
func (c *FormController) status(w http.ResponseWriter, r *http.Request, form *services.Form) {
	middleware.Success(w, r, map[string]any{
		"message":   fmt.Sprintf("%s endpoint is running", form.Title),
		"timestamp": models.FormatTimestamp(time.Now()),
		"version":   c.version,
		"form":      form.Name,
		"actions":   form.Actions,
	})
}

// fail maps err to the message of an error envelope
func (c *FormController) fail(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	var storeErr *services.StoreAccessError

	message := err.Error()
	switch {
	case errors.As(err, &validationErr):
		message = validationErr.Message
	case errors.Is(err, services.ErrUnknownForm),
		errors.Is(err, services.ErrUnsupportedAction),
		errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrMalformedPayload),
		errors.Is(err, services.ErrUnauthorized):
	case errors.As(err, &storeErr):
		c.log.Error("store access failed", "op", storeErr.Op, "error", storeErr.Err)
	default:
		c.log.Error("request failed", "path", r.URL.Path, "error", err)
		message = "internal server error"
	}

	middleware.Fail(w, r, message)
}

// readPayload decodes the request data: the data parameter on GET, the raw
// body on POST. A POST with an empty body falls back to the data parameter.
func readPayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	raw := r.URL.Query().Get("data")

	if r.Method == http.MethodPost {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", services.ErrMalformedPayload, err)
		}
		if strings.TrimSpace(string(body)) != "" {
			raw = string(body)
		}
	}

	payload := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return payload, nil
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, services.ErrMalformedPayload
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
