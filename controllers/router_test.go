package controllers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/form-intake/authenticator"
	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/controllers"
	"github.com/blogem/form-intake/database"
	"github.com/blogem/form-intake/notifier"
	"github.com/blogem/form-intake/repositories"
	"github.com/blogem/form-intake/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticVerifier struct{ token string }

func (v staticVerifier) Verify(_ context.Context, raw string) (*authenticator.Identity, error) {
	if raw != v.token {
		return nil, errors.New("invalid token")
	}
	return &authenticator.Identity{Subject: "auth0|editor", Email: "editor@example.com"}, nil
}

// RouterTestSuite drives the HTTP surface against a real in-memory store
type RouterTestSuite struct {
	suite.Suite
	db       *sql.DB
	repos    *repositories.Repositories
	services *services.Services
	cfg      *config.Config
	router   *chi.Mux
}

// SetupTest sets up the test suite before each test
func (suite *RouterTestSuite) SetupTest() {
	db, err := database.InitializeDatabase(database.MemoryPath)
	require.NoError(suite.T(), err)
	suite.db = db
	suite.repos = repositories.NewRepositories(db)
	suite.cfg = &config.Config{Version: "1.0.0", Forms: map[string]config.FormConfig{}}
	suite.build(nil)
}

// TearDownTest closes the store after each test
func (suite *RouterTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *RouterTestSuite) build(verifier authenticator.Verifier) {
	dispatcher := notifier.NewDispatcher(nil, nil, suite.repos.EventLog, discardLogger())
	suite.services = services.NewServices(suite.repos, dispatcher, nil, suite.cfg, discardLogger())
	ctrl := controllers.NewControllers(suite.services, suite.cfg, discardLogger())
	suite.router = controllers.NewRouter(ctrl, verifier, 5*time.Second, discardLogger())
}

func (suite *RouterTestSuite) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)
	return w
}

func (suite *RouterTestSuite) envelope(w *httptest.ResponseRecorder) map[string]any {
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var out map[string]any
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (suite *RouterTestSuite) rowCount(form string) int {
	ctx := context.Background()
	f, err := suite.services.Intake.Form(form)
	require.NoError(suite.T(), err)
	t, err := suite.services.Intake.Table(ctx, f)
	require.NoError(suite.T(), err)
	n, err := suite.repos.Tables.RowCount(ctx, t)
	require.NoError(suite.T(), err)
	return n
}

func (suite *RouterTestSuite) addComment(content string) string {
	w := suite.do(http.MethodPost, "/forms/comments?action=add",
		`{"content":"`+content+`","author":"Kim","isAnonymous":false}`)
	body := suite.envelope(w)
	require.Equal(suite.T(), "success", body["status"], body)
	return body["comment"].(map[string]any)["id"].(string)
}

// TestPostComment tests the comment envelope and the persisted row
func (suite *RouterTestSuite) TestPostComment() {
	w := suite.do(http.MethodPost, "/forms/comments?action=add", `{"content":"hello","author":"Kim","isAnonymous":false}`)

	assert.True(suite.T(), strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
	assert.Equal(suite.T(), "*", w.Header().Get("Access-Control-Allow-Origin"))

	body := suite.envelope(w)
	assert.Equal(suite.T(), "success", body["status"])

	comment := body["comment"].(map[string]any)
	assert.Regexp(suite.T(), `^comment_\d+_[0-9a-z]{9}$`, comment["id"])
	assert.Equal(suite.T(), "Kim", comment["author"])
	assert.Equal(suite.T(), "hello", comment["content"])
	assert.Equal(suite.T(), float64(0), comment["likes"])
	assert.Equal(suite.T(), false, comment["isAnonymous"])
	assert.NotEmpty(suite.T(), comment["timestamp"])

	assert.Equal(suite.T(), 1, suite.rowCount(services.FormComments))
}

// TestPostWithoutActionMeansAdd tests the POST default action
func (suite *RouterTestSuite) TestPostWithoutActionMeansAdd() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/comments", `{"content":"hi","author":"Lee"}`))

	assert.Equal(suite.T(), "success", body["status"])
	assert.Contains(suite.T(), body, "comment")
}

// TestPostEmptyContent tests that a validation failure stores nothing
func (suite *RouterTestSuite) TestPostEmptyContent() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=add", `{"content":"","author":"Kim"}`))

	assert.Equal(suite.T(), map[string]any{"status": "error", "message": "content required"}, body)
	assert.Equal(suite.T(), 0, suite.rowCount(services.FormComments))
}

// TestGetComments tests listing through the data-less get action
func (suite *RouterTestSuite) TestGetComments() {
	empty := suite.envelope(suite.do(http.MethodGet, "/forms/comments?action=get", ""))
	assert.Equal(suite.T(), []any{}, empty["comments"])

	suite.addComment("first")

	body := suite.envelope(suite.do(http.MethodGet, "/forms/comments?action=get", ""))
	comments := body["comments"].([]any)
	require.Len(suite.T(), comments, 1)
	assert.Equal(suite.T(), "first", comments[0].(map[string]any)["content"])
}

// TestGetJSONP tests the callback wrapping of a GET response
func (suite *RouterTestSuite) TestGetJSONP() {
	w := suite.do(http.MethodGet, "/forms/comments?action=get&callback=handleComments", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), strings.HasPrefix(w.Header().Get("Content-Type"), "application/javascript"))
	assert.Equal(suite.T(), `handleComments({"comments":[],"status":"success"})`, w.Body.String())
}

// TestInvalidCallback tests that a bad callback name gets a plain JSON error
func (suite *RouterTestSuite) TestInvalidCallback() {
	data := url.QueryEscape(`{"content":"x","author":"Kim"}`)
	w := suite.do(http.MethodGet, "/forms/comments?action=add&callback=alert(1)&data="+data, "")

	assert.True(suite.T(), strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
	body := suite.envelope(w)
	assert.Equal(suite.T(), "invalid callback", body["message"])
	assert.Equal(suite.T(), 0, suite.rowCount(services.FormComments))
}

// TestLikeViaGetData tests the like action with a JSON data parameter
func (suite *RouterTestSuite) TestLikeViaGetData() {
	id := suite.addComment("likeable")
	data := url.QueryEscape(`{"commentId":"` + id + `"}`)

	first := suite.envelope(suite.do(http.MethodGet, "/forms/comments?action=like&data="+data, ""))
	second := suite.envelope(suite.do(http.MethodGet, "/forms/comments?action=like&data="+data, ""))

	assert.Equal(suite.T(), float64(1), first["likes"])
	assert.Equal(suite.T(), float64(2), second["likes"])
}

// TestLikeUnknownComment tests the not found message
func (suite *RouterTestSuite) TestLikeUnknownComment() {
	data := url.QueryEscape(`{"commentId":"comment_1_aaaaaaaaa"}`)
	body := suite.envelope(suite.do(http.MethodGet, "/forms/comments?action=like&data="+data, ""))

	assert.Equal(suite.T(), "error", body["status"])
	assert.Equal(suite.T(), "comment not found", body["message"])
}

// TestMalformedData tests that invalid JSON is rejected before any write
func (suite *RouterTestSuite) TestMalformedData() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=add", `{"content":`))

	assert.Equal(suite.T(), "error", body["status"])
	assert.Equal(suite.T(), "malformed payload", body["message"])
	assert.Equal(suite.T(), 0, suite.rowCount(services.FormComments))
}

// TestDeleteOpenWithoutIssuer tests delete when no admin issuer is configured
func (suite *RouterTestSuite) TestDeleteOpenWithoutIssuer() {
	id := suite.addComment("bye")

	body := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=delete", `{"commentId":"`+id+`"}`))

	assert.Equal(suite.T(), "success", body["status"])
	assert.Equal(suite.T(), true, body["success"])
	assert.Equal(suite.T(), 0, suite.rowCount(services.FormComments))
}

// TestDeleteRequiresAdmin tests the admin token check on delete
func (suite *RouterTestSuite) TestDeleteRequiresAdmin() {
	suite.cfg.Admin = config.AdminConfig{Issuer: "https://issuer.example.com/", ClientID: "form-intake"}
	suite.build(staticVerifier{token: "letmein"})
	id := suite.addComment("protected")
	payload := `{"commentId":"` + id + `"}`

	denied := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=delete", payload))
	assert.Equal(suite.T(), "unauthorized", denied["message"])

	wrong := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=delete", payload, "Authorization", "Bearer nope"))
	assert.Equal(suite.T(), "unauthorized", wrong["message"])
	assert.Equal(suite.T(), 1, suite.rowCount(services.FormComments))

	allowed := suite.envelope(suite.do(http.MethodPost, "/forms/comments?action=delete", payload, "Authorization", "Bearer letmein"))
	assert.Equal(suite.T(), true, allowed["success"])
	assert.Equal(suite.T(), 0, suite.rowCount(services.FormComments))
}

// TestPreflight tests the OPTIONS response
func (suite *RouterTestSuite) TestPreflight() {
	w := suite.do(http.MethodOptions, "/forms/techrequest", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), w.Body.String())
	assert.Equal(suite.T(), "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(suite.T(), "86400", w.Header().Get("Access-Control-Max-Age"))
}

// TestFormLiveness tests GET without parameters
func (suite *RouterTestSuite) TestFormLiveness() {
	body := suite.envelope(suite.do(http.MethodGet, "/forms/comments", ""))

	assert.Equal(suite.T(), "success", body["status"])
	assert.Equal(suite.T(), "1.0.0", body["version"])
	assert.Equal(suite.T(), "comments", body["form"])
	assert.Equal(suite.T(), []any{"get", "add", "like", "delete"}, body["actions"])
	assert.NotEmpty(suite.T(), body["message"])
	assert.NotEmpty(suite.T(), body["timestamp"])
}

// TestIndexAndHealth tests the service level routes
func (suite *RouterTestSuite) TestIndexAndHealth() {
	index := suite.envelope(suite.do(http.MethodGet, "/", ""))
	assert.Equal(suite.T(), "success", index["status"])
	assert.Equal(suite.T(), []any{"comments", "feedback", "message", "schedule", "techrequest"}, index["forms"])

	health := suite.envelope(suite.do(http.MethodGet, "/health", ""))
	assert.Equal(suite.T(), map[string]any{"status": "healthy", "service": "form-intake"}, health)
}

// TestUnknownForm tests the unknown form message
func (suite *RouterTestSuite) TestUnknownForm() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/survey", `{}`))

	assert.Equal(suite.T(), map[string]any{"status": "error", "message": "unknown form"}, body)
}

// TestUnsupportedAction tests an action the form does not offer
func (suite *RouterTestSuite) TestUnsupportedAction() {
	body := suite.envelope(suite.do(http.MethodGet, "/forms/feedback?action=get", ""))

	assert.Equal(suite.T(), "error", body["status"])
	assert.Equal(suite.T(), `unsupported action "get"`, body["message"])
}

// TestUnroutedPath tests the envelope for unknown paths
func (suite *RouterTestSuite) TestUnroutedPath() {
	body := suite.envelope(suite.do(http.MethodGet, "/nowhere", ""))

	assert.Equal(suite.T(), "error", body["status"])
	assert.Equal(suite.T(), "not found", body["message"])
}

// TestFeedbackSubmission tests the generic add response
func (suite *RouterTestSuite) TestFeedbackSubmission() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/feedback", `{"emotion":"happy","q1":"more snacks"}`))

	assert.Equal(suite.T(), "success", body["status"])
	assert.Equal(suite.T(), "feedback submission received", body["message"])
	assert.Equal(suite.T(), []any{}, body["notifications"])
	assert.NotContains(suite.T(), body, "id")
	assert.Equal(suite.T(), 1, suite.rowCount(services.FormFeedback))
}

// TestMessageSubmission tests the relay flags when no channel is requested
func (suite *RouterTestSuite) TestMessageSubmission() {
	body := suite.envelope(suite.do(http.MethodPost, "/forms/message",
		`{"name":"Kim","email":"kim@example.com","message":"hello","sendEmail":false,"sendWebhook":false}`))

	assert.Equal(suite.T(), "success", body["status"])
	assert.Equal(suite.T(), false, body["emailSent"])
	assert.Equal(suite.T(), false, body["webhookSent"])
}

// TestRouterTestSuite runs the test suite
func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
