package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "POST", cfg.Form("comments").Webhook.Method)
	assert.False(t, cfg.Form("message").AllowClientTargets)
	assert.Empty(t, cfg.Form("unknown").Webhook.URL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("FORM_INTAKE_ENV", EnvDev)
	t.Setenv("FORM_INTAKE_SERVER_ADDR", ":9090")
	t.Setenv("FORM_INTAKE_SERVER_TIMEOUT", "5s")
	t.Setenv("FORM_INTAKE_FORMS_TECHREQUEST_EMAIL_RECIPIENTS", "a@example.com,b@example.com")
	t.Setenv("FORM_INTAKE_FORMS_MESSAGE_ALLOW_CLIENT_TARGETS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Form("techrequest").Email.Recipients)
	assert.True(t, cfg.Form("message").AllowClientTargets)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form-intake.yaml")
	content := `
env: local
store:
  path: /tmp/forms.db
mail:
  host: smtp.example.com
  password: hunter2
forms:
  comments:
    webhook:
      url: https://hooks.example.com/comments
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "/tmp/forms.db", cfg.Store.Path)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, "https://hooks.example.com/comments", cfg.Form("comments").Webhook.URL)
	// Defaults still apply to keys the file leaves out
	assert.Equal(t, "POST", cfg.Form("comments").Webhook.Method)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("FORM_INTAKE_ENV", "staging")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid env")
}

func TestLoadIssuerRequiresClientID(t *testing.T) {
	t.Setenv("FORM_INTAKE_ADMIN_ISSUER", "https://accounts.example.com")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin.client_id")
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		Mail:  MailConfig{Password: "hunter2"},
		Forms: map[string]FormConfig{"techrequest": {Email: EmailTarget{Recipients: []string{"a@example.com"}}}},
	}

	out := cfg.Redacted()
	assert.Equal(t, "********", out.Mail.Password)
	assert.Equal(t, "hunter2", cfg.Mail.Password)

	out.Forms["techrequest"].Email.Recipients[0] = "changed"
	assert.Equal(t, "a@example.com", cfg.Forms["techrequest"].Email.Recipients[0])
}
