package notifier_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/notifier"
	"github.com/blogem/form-intake/notifier/mocks"
)

// DispatcherTestSuite tests channel delivery, retries, and failure recording
type DispatcherTestSuite struct {
	suite.Suite
	mailer   *mocks.MockMailer
	recorder *mocks.MockFailureRecorder
	sleeps   []time.Duration
	dispatch *notifier.Dispatcher
}

// SetupTest sets up the test suite before each test
func (suite *DispatcherTestSuite) SetupTest() {
	suite.mailer = mocks.NewMockMailer(suite.T())
	suite.recorder = mocks.NewMockFailureRecorder(suite.T())
	suite.sleeps = nil

	suite.dispatch = notifier.NewDispatcher(suite.mailer, nil, suite.recorder, nil,
		notifier.WithSleep(func(_ context.Context, d time.Duration) error {
			suite.sleeps = append(suite.sleeps, d)
			return nil
		}),
	)
}

// TestEmail_DeliveredFirstTry tests that a successful send is attempted once
func (suite *DispatcherTestSuite) TestEmail_DeliveredFirstTry() {
	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Source: "techrequest",
		Email:  &notifier.EmailPlan{Recipients: []string{"ops@example.com"}, Subject: "s", Body: "b"},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.True(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), 1, result.Outcomes[0].Attempts)
	assert.True(suite.T(), result.Delivered(notifier.ChannelEmail))
	assert.Empty(suite.T(), suite.sleeps)
}

// TestEmail_RetriesThenSucceeds tests that a transient failure is retried with backoff
func (suite *DispatcherTestSuite) TestEmail_RetriesThenSucceeds() {
	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).Return(errors.New("421 busy")).Once()
	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Email: &notifier.EmailPlan{Recipients: []string{"ops@example.com"}},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.True(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), 2, result.Outcomes[0].Attempts)
	assert.Equal(suite.T(), []time.Duration{2 * time.Second}, suite.sleeps)
}

// TestEmail_ExhaustedRetriesAreRecorded tests the final failure log row
func (suite *DispatcherTestSuite) TestEmail_ExhaustedRetriesAreRecorded() {
	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).Return(errors.New("550 rejected")).Times(3)
	suite.recorder.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e models.LogEntry) bool {
		return e.EventKind == notifier.EventEmailFailed &&
			e.Target == "ops@example.com" &&
			e.Context == "techrequest" &&
			strings.Contains(e.ErrorDetail, "550")
	})).Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Source: "techrequest",
		Email:  &notifier.EmailPlan{Recipients: []string{"ops@example.com"}},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.False(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), 3, result.Outcomes[0].Attempts)
	assert.Contains(suite.T(), result.Outcomes[0].Error, "550 rejected")
	assert.Equal(suite.T(), []time.Duration{2 * time.Second, 4 * time.Second}, suite.sleeps)
}

// TestEmail_OneOutcomePerRecipient tests that recipients are attempted independently
func (suite *DispatcherTestSuite) TestEmail_OneOutcomePerRecipient() {
	suite.mailer.EXPECT().Send(mock.Anything, "a@example.com", mock.Anything).Return(errors.New("down")).Times(3)
	suite.mailer.EXPECT().Send(mock.Anything, "b@example.com", mock.Anything).Return(nil).Once()
	suite.recorder.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Email: &notifier.EmailPlan{Recipients: []string{"a@example.com", "b@example.com"}},
	})

	require.Len(suite.T(), result.Outcomes, 2)
	assert.False(suite.T(), result.Outcomes[0].Delivered)
	assert.True(suite.T(), result.Outcomes[1].Delivered)
	assert.True(suite.T(), result.Delivered(notifier.ChannelEmail))
}

// TestEmail_AttachmentNotesInBody tests that dropped uploads are listed in the body
func (suite *DispatcherTestSuite) TestEmail_AttachmentNotesInBody() {
	var sent *notifier.Email
	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).
		Run(func(_ context.Context, _ string, msg *notifier.Email) { sent = msg }).
		Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Email: &notifier.EmailPlan{
			Recipients: []string{"ops@example.com"},
			Body:       "request body",
			Uploads: []models.Upload{
				{Name: "ok.png", Type: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("png"))},
				{Name: "empty.png"},
			},
		},
	})

	require.NotNil(suite.T(), sent)
	assert.Len(suite.T(), sent.Attachments, 1)
	assert.True(suite.T(), strings.HasPrefix(sent.Body, "request body"))
	assert.Contains(suite.T(), sent.Body, "empty.png (excluded: no data)")
	assert.Equal(suite.T(), []string{"empty.png (excluded: no data)"}, result.Notes)
}

// TestEmail_NoTransport tests that a missing mailer is reported without retries
func (suite *DispatcherTestSuite) TestEmail_NoTransport() {
	d := notifier.NewDispatcher(nil, nil, nil, nil)

	result := d.Dispatch(context.Background(), notifier.Plan{
		Email: &notifier.EmailPlan{Recipients: []string{"ops@example.com"}},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.False(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), 0, result.Outcomes[0].Attempts)
	assert.Equal(suite.T(), "mail transport not configured", result.Outcomes[0].Error)
}

// TestWebhook_Delivered tests the JSON webhook request
func (suite *DispatcherTestSuite) TestWebhook_Delivered() {
	var gotMethod, gotType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Webhooks: []notifier.WebhookPlan{{URL: server.URL, Method: "put", Payload: map[string]string{"text": "hi"}}},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.True(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), http.MethodPut, gotMethod)
	assert.Equal(suite.T(), "application/json", gotType)
	assert.Equal(suite.T(), "hi", gotBody["text"])
}

// TestWebhook_ErrorStatusIsNotRetried tests that non-2xx is a single failed attempt
func (suite *DispatcherTestSuite) TestWebhook_ErrorStatusIsNotRetried() {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	suite.recorder.EXPECT().Create(mock.Anything, mock.MatchedBy(func(e models.LogEntry) bool {
		return e.EventKind == notifier.EventWebhookFailed && e.Target == server.URL
	})).Return(nil).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Webhooks: []notifier.WebhookPlan{{URL: server.URL, Payload: map[string]string{"text": "hi"}}},
	})

	require.Len(suite.T(), result.Outcomes, 1)
	assert.False(suite.T(), result.Outcomes[0].Delivered)
	assert.Equal(suite.T(), 1, result.Outcomes[0].Attempts)
	assert.Contains(suite.T(), result.Outcomes[0].Error, "status 500")
	assert.Equal(suite.T(), 1, calls)
}

// TestWebhook_UnreachableDoesNotAffectEmail tests channel isolation
func (suite *DispatcherTestSuite) TestWebhook_UnreachableDoesNotAffectEmail() {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	suite.mailer.EXPECT().Send(mock.Anything, "ops@example.com", mock.Anything).Return(nil).Once()
	suite.recorder.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("store down")).Once()

	result := suite.dispatch.Dispatch(context.Background(), notifier.Plan{
		Email:    &notifier.EmailPlan{Recipients: []string{"ops@example.com"}},
		Webhooks: []notifier.WebhookPlan{{URL: url, Payload: map[string]string{}}},
	})

	require.Len(suite.T(), result.Outcomes, 2)
	assert.True(suite.T(), result.Delivered(notifier.ChannelEmail))
	assert.False(suite.T(), result.Delivered(notifier.ChannelWebhook))
}

// TestPlan_Empty tests the empty plan check
func (suite *DispatcherTestSuite) TestPlan_Empty() {
	assert.True(suite.T(), notifier.Plan{}.Empty())
	assert.True(suite.T(), notifier.Plan{Email: &notifier.EmailPlan{}}.Empty())
	assert.False(suite.T(), notifier.Plan{Webhooks: []notifier.WebhookPlan{{URL: "x"}}}.Empty())
}

// TestDispatcherTestSuite runs the test suite
func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}
