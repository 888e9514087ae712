package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/notifier"
)

// Built-in form names
const (
	FormComments    = "comments"
	FormFeedback    = "feedback"
	FormSchedule    = "schedule"
	FormTechRequest = "techrequest"
	FormMessage     = "message"
)

const webhookSummaryLen = 100

// Form is one intake endpoint: its record schema, the actions it accepts, and
// how accepted submissions are announced.
type Form struct {
	Name    string
	Title   string
	Schema  models.Schema
	Actions []string

	// prepare extracts uploads and rewrites their payload keys before validation
	prepare func(payload map[string]any) ([]models.Upload, error)
	// plan builds the notifications for an accepted submission
	plan func(sub *Submission, cfg config.FormConfig) notifier.Plan
}

// Supports reports whether the form accepts action
func (f *Form) Supports(action string) bool {
	for _, a := range f.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Catalog resolves form names to forms
type Catalog struct {
	forms map[string]*Form
}

// NewCatalog returns the catalog of built-in forms
func NewCatalog() *Catalog {
	c := &Catalog{forms: make(map[string]*Form)}
	for _, f := range builtinForms() {
		c.forms[f.Name] = f
	}
	return c
}

// Lookup returns the named form or ErrUnknownForm
func (c *Catalog) Lookup(name string) (*Form, error) {
	f, ok := c.forms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownForm
	}
	return f, nil
}

// Names returns the form names in alphabetical order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinForms() []*Form {
	feedback := []models.FieldSpec{
		{Key: "timestamp", Header: "Timestamp", Kind: models.KindTimestamp},
		{Key: "emotion", Header: "Emotion", Kind: models.KindText, Required: true, MaxLen: 50},
	}
	for i := 1; i <= 7; i++ {
		n := strconv.Itoa(i)
		feedback = append(feedback, models.FieldSpec{Key: "q" + n, Header: "Q" + n, Kind: models.KindText, MaxLen: 1000})
	}

	return []*Form{
		{
			Name:  FormComments,
			Title: "In-house magazine comments",
			Schema: models.Schema{
				Form:     FormComments,
				Table:    "Comments",
				IDPrefix: "comment",
				// content is checked before author
				Validation: []string{"content", "author"},
				Columns: []models.FieldSpec{
					{Key: "id", Header: "ID", Kind: models.KindID},
					{Key: "author", Header: "Author", Kind: models.KindText, Required: true, MaxLen: 20},
					{Key: "content", Header: "Content", Kind: models.KindText, Required: true, MaxLen: 500},
					{Key: "timestamp", Header: "Timestamp", Kind: models.KindTimestamp},
					{Key: "likes", Header: "Likes", Kind: models.KindCounter},
					{Key: "isAnonymous", Header: "IsAnonymous", Kind: models.KindBool},
				},
			},
			Actions: []string{models.ActionGet, models.ActionAdd, models.ActionLike, models.ActionDelete},
			plan:    genericPlan,
		},
		{
			Name:  FormFeedback,
			Title: "Feedback box",
			Schema: models.Schema{
				Form:    FormFeedback,
				Table:   "Responses",
				Columns: feedback,
			},
			Actions: []string{models.ActionAdd},
			plan:    genericPlan,
		},
		{
			Name:  FormSchedule,
			Title: "Team schedule requests",
			Schema: models.Schema{
				Form:  FormSchedule,
				Table: "ScheduleRequests",
				Columns: []models.FieldSpec{
					{Key: "requestTime", Header: "RequestTime", Kind: models.KindTimestamp},
					{Key: "requester", Header: "Requester", Kind: models.KindText, Required: true, MaxLen: 50},
					{Key: "eventDate", Header: "RequestDate", Kind: models.KindDate, Required: true, MaxLen: 10},
					{Key: "company", Header: "Brand", Kind: models.KindText, MaxLen: 100},
					{Key: "eventTitle", Header: "Title", Kind: models.KindText, Required: true, MaxLen: 200},
					{Key: "eventDescription", Header: "Description", Kind: models.KindText, MaxLen: 2000},
				},
			},
			Actions: []string{models.ActionAdd},
			plan:    genericPlan,
		},
		{
			Name:  FormTechRequest,
			Title: "Technical development requests",
			Schema: models.Schema{
				Form:  FormTechRequest,
				Table: "TechRequests",
				Columns: []models.FieldSpec{
					{Key: "requestTime", Header: "RequestTime", Kind: models.KindTimestamp},
					{Key: "requester", Header: "Requester", Kind: models.KindText, Required: true, MaxLen: 50},
					{Key: "developmentType", Header: "DevelopmentType", Kind: models.KindText, MaxLen: 50},
					{Key: "menuLocation", Header: "MenuLocation", Kind: models.KindText, Required: true, MaxLen: 200},
					{Key: "requestContent", Header: "RequestContent", Kind: models.KindText, Required: true, MaxLen: 5000},
					{Key: "photos", Header: "Photos", Kind: models.KindText},
					{Key: "excel", Header: "Excel", Kind: models.KindText},
				},
			},
			Actions: []string{models.ActionAdd},
			prepare: prepareTechRequest,
			plan:    techRequestPlan,
		},
		{
			Name:  FormMessage,
			Title: "Message relay",
			Schema: models.Schema{
				Form:  FormMessage,
				Table: "Messages",
				Columns: []models.FieldSpec{
					{Key: "timestamp", Header: "Timestamp", Kind: models.KindTimestamp},
					{Key: "name", Header: "Name", Kind: models.KindText, Required: true, MaxLen: 50},
					{Key: "email", Header: "Email", Kind: models.KindEmail, Required: true, MaxLen: 254},
					{Key: "message", Header: "Message", Kind: models.KindText, Required: true, MaxLen: 5000},
					{Key: "sendEmail", Header: "SendEmail", Kind: models.KindBool},
					{Key: "sendWebhook", Header: "SendWebhook", Kind: models.KindBool},
				},
			},
			Actions: []string{models.ActionAdd},
			plan:    messagePlan,
		},
	}
}

// genericPlan notifies the configured email recipients and webhook, if any
func genericPlan(sub *Submission, cfg config.FormConfig) notifier.Plan {
	plan := notifier.Plan{Source: sub.Form.Name}
	summary := recordSummary(sub)

	if len(cfg.Email.Recipients) > 0 {
		subject := cfg.Email.Subject
		if subject == "" {
			subject = fmt.Sprintf("[%s] New submission", sub.Form.Title)
		}
		plan.Email = &notifier.EmailPlan{
			Recipients: cfg.Email.Recipients,
			Subject:    subject,
			Body:       summary,
		}
	}

	if cfg.Webhook.URL != "" {
		event := map[string]any{
			"event":     "new_" + sub.Form.Name,
			"form":      sub.Form.Name,
			"timestamp": models.FormatTimestamp(sub.Record.Timestamp),
			"data":      sub.Record.Fields.Map(),
			"text":      summary,
		}
		if sub.Record.ID != "" {
			event["id"] = sub.Record.ID
		}
		plan.Webhooks = append(plan.Webhooks, notifier.WebhookPlan{
			URL:     cfg.Webhook.URL,
			Method:  cfg.Webhook.Method,
			Payload: event,
		})
	}

	return plan
}

// recordSummary renders the non-empty client fields as "Header: value" lines
func recordSummary(sub *Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] New submission\n", sub.Form.Title)
	for _, col := range sub.Form.Schema.Columns {
		if col.ServerAssigned() {
			continue
		}
		if v := sub.Record.Fields.Get(col.Key); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", col.Header, v)
		}
	}
	fmt.Fprintf(&b, "Received: %s", models.FormatTimestamp(sub.Record.Timestamp))
	return b.String()
}

// prepareTechRequest decodes photos[] and excel uploads and replaces them in
// the payload with their file names
func prepareTechRequest(payload map[string]any) ([]models.Upload, error) {
	var uploads []models.Upload

	if raw, ok := payload["photos"]; ok && raw != nil {
		var photos []models.Upload
		if err := remarshal(raw, &photos); err != nil {
			return nil, &models.ValidationError{Field: "photos", Message: "photos must be a list of files"}
		}
		names := make([]string, 0, len(photos))
		for _, p := range photos {
			names = append(names, p.Name)
		}
		payload["photos"] = strings.Join(names, ", ")
		uploads = append(uploads, photos...)
	}

	if raw, ok := payload["excel"]; ok && raw != nil {
		var excel models.Upload
		if err := remarshal(raw, &excel); err != nil {
			return nil, &models.ValidationError{Field: "excel", Message: "excel must be a file"}
		}
		payload["excel"] = excel.Name
		uploads = append(uploads, excel)
	}

	return uploads, nil
}

func techRequestPlan(sub *Submission, cfg config.FormConfig) notifier.Plan {
	fields := sub.Record.Fields
	devType := fields.Get("developmentType")
	if devType == "" {
		devType = "Other"
	}
	received := models.FormatTimestamp(sub.Record.Timestamp)
	// prepareTechRequest appends the excel upload after the photos
	photoCount := len(sub.Uploads)
	if _, ok := sub.Payload["excel"].(string); ok && photoCount > 0 {
		photoCount--
	}

	plan := notifier.Plan{Source: sub.Form.Name}

	if len(cfg.Email.Recipients) > 0 {
		subject := cfg.Email.Subject
		if subject == "" {
			subject = fmt.Sprintf("[Tech Request] %s - %s - %s", fields.Get("requester"), devType, fields.Get("menuLocation"))
		}

		var body strings.Builder
		body.WriteString("[Tech Request received]\n\n[Request]\n")
		fmt.Fprintf(&body, "- Requester: %s\n", fields.Get("requester"))
		fmt.Fprintf(&body, "- Development type: %s\n", devType)
		fmt.Fprintf(&body, "- Menu location: %s\n", fields.Get("menuLocation"))
		fmt.Fprintf(&body, "- Received: %s\n\n", received)
		body.WriteString("[Request content]\n")
		body.WriteString(fields.Get("requestContent"))
		body.WriteString("\n")
		if photoCount > 0 {
			fmt.Fprintf(&body, "\n[Attached photos]: %d (%s)\n", photoCount, fields.Get("photos"))
		}
		if excel := fields.Get("excel"); excel != "" {
			fmt.Fprintf(&body, "\n[Attached excel]: %s\n", excel)
		}
		body.WriteString("\n---\nThis email was generated automatically.")

		plan.Email = &notifier.EmailPlan{
			Recipients: cfg.Email.Recipients,
			Subject:    subject,
			Body:       body.String(),
			FromName:   "Tech Request System",
			Uploads:    sub.Uploads,
		}
	}

	if cfg.Webhook.URL != "" {
		photos := "none"
		if photoCount > 0 {
			photos = strconv.Itoa(photoCount)
		}
		excel := fields.Get("excel")
		if excel == "" {
			excel = "none"
		}

		var text strings.Builder
		text.WriteString("[Tech Request received]\n\n")
		fmt.Fprintf(&text, "[Requester]: %s\n", fields.Get("requester"))
		fmt.Fprintf(&text, "[Development type]: %s\n", devType)
		fmt.Fprintf(&text, "[Menu location]: %s\n", fields.Get("menuLocation"))
		fmt.Fprintf(&text, "[Request content]: %s\n\n", truncate(fields.Get("requestContent"), webhookSummaryLen))
		text.WriteString("[Attachments]:\n")
		fmt.Fprintf(&text, "- Photos: %s\n", photos)
		fmt.Fprintf(&text, "- Excel: %s\n\n", excel)
		fmt.Fprintf(&text, "[Received]: %s", received)

		plan.Webhooks = append(plan.Webhooks, notifier.WebhookPlan{
			URL:     cfg.Webhook.URL,
			Method:  cfg.Webhook.Method,
			Payload: map[string]string{"text": text.String()},
		})
	}

	return plan
}

// messagePlan sends the email and webhook the submitter asked for. Targets come
// from the payload only when the form allows client targets.
func messagePlan(sub *Submission, cfg config.FormConfig) notifier.Plan {
	fields := sub.Record.Fields
	plan := notifier.Plan{Source: sub.Form.Name}

	recipients := cfg.Email.Recipients
	subject := cfg.Email.Subject
	webhookURL := cfg.Webhook.URL
	webhookMethod := cfg.Webhook.Method
	if cfg.AllowClientTargets {
		if r := payloadString(sub.Payload, "emailRecipient"); r != "" {
			recipients = []string{r}
		}
		if s := payloadString(sub.Payload, "emailSubject"); s != "" {
			subject = s
		}
		if u := payloadString(sub.Payload, "webhookUrl"); u != "" {
			webhookURL = u
		}
		if m := payloadString(sub.Payload, "webhookMethod"); m != "" {
			webhookMethod = m
		}
	}
	if subject == "" {
		subject = "New message received"
	}

	received := models.FormatTimestamp(sub.Record.Timestamp)

	if fields.Bool("sendEmail") && len(recipients) > 0 {
		var body strings.Builder
		body.WriteString("A new message was received.\n\n[Message details]\n")
		fmt.Fprintf(&body, "- Name: %s\n", fields.Get("name"))
		fmt.Fprintf(&body, "- Email: %s\n", fields.Get("email"))
		fmt.Fprintf(&body, "- Received: %s\n\n", received)
		body.WriteString("[Message]\n")
		body.WriteString(fields.Get("message"))
		body.WriteString("\n\n---\nThis message was sent automatically.")

		plan.Email = &notifier.EmailPlan{
			Recipients: recipients,
			Subject:    subject,
			Body:       body.String(),
		}
	}

	if fields.Bool("sendWebhook") && webhookURL != "" {
		plan.Webhooks = append(plan.Webhooks, notifier.WebhookPlan{
			URL:    webhookURL,
			Method: webhookMethod,
			Payload: map[string]any{
				"event":     "new_message",
				"timestamp": received,
				"data": map[string]string{
					"name":    fields.Get("name"),
					"email":   fields.Get("email"),
					"message": fields.Get("message"),
				},
			},
		})
	}

	return plan
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return strings.TrimSpace(s)
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
