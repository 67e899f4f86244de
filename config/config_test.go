package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/avatax/errors"
	"github.com/kochabx/avatax/log/writer"
	"github.com/kochabx/avatax/rest"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppFromFile(t *testing.T) {
	path := writeFile(t, `
client:
  url: https://development.avalara.net
  account: "1100012345"
  license: 1A2B3C4D5E6F7G8H
  ssl_verify: false
  transport:
    connect_timeout: 3s
    keep_alive: true
log:
  level: debug
  output: file
  file:
    filename: client
    rotate_mode: size
request_id_header: X-Request-Id
metrics:
  textfile: /tmp/avatax.prom
`)

	app, err := LoadApp(path)
	require.NoError(t, err)

	assert.Equal(t, "https://development.avalara.net", app.Client.URL)
	assert.Equal(t, "1100012345", app.Client.Account)
	assert.Equal(t, "1A2B3C4D5E6F7G8H", app.Client.License)
	assert.False(t, app.Client.SSLVerify)
	assert.Equal(t, 3*time.Second, app.Client.Transport.ConnectTimeout)
	assert.True(t, app.Client.Transport.KeepAlive)
	assert.Equal(t, rest.DefaultUserAgent, app.Client.Transport.UserAgent)
	assert.Equal(t, "debug", app.Log.Level)
	assert.Equal(t, writer.RotateModeSize, app.Log.File.RotateMode)
	assert.Equal(t, "X-Request-Id", app.RequestIDHeader)
	assert.Equal(t, "/tmp/avatax.prom", app.Metrics.Textfile)
}

func TestLoadAppDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	app, err := LoadApp("")
	require.NoError(t, err)
	assert.Empty(t, app.Client.URL)
	assert.Equal(t, "info", app.Log.Level)
	assert.Equal(t, rest.DefaultUserAgent, app.Client.Transport.UserAgent)
	assert.True(t, app.Client.SSLVerify)
	assert.Equal(t, rest.DefaultConnectTimeout, app.Client.Transport.ConnectTimeout)
}

func TestLoadAppEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AVATAX_CLIENT_URL", "https://env.example.com")
	t.Setenv("AVATAX_CLIENT_LICENSE", "from-env")
	t.Setenv("AVATAX_CLIENT_TRANSPORT_TIMEOUT", "30s")
	t.Setenv("AVATAX_LOG_LEVEL", "warn")

	app, err := LoadApp("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", app.Client.URL)
	assert.Equal(t, "from-env", app.Client.License)
	assert.Equal(t, 30*time.Second, app.Client.Transport.Timeout)
	assert.Equal(t, "warn", app.Log.Level)
}

func TestLoadAppFlagsWin(t *testing.T) {
	path := writeFile(t, "client:\n  account: file-account\n")

	v := viper.New()
	v.Set("client.account", "flag-account")

	app, err := LoadApp(path, WithViper(v))
	require.NoError(t, err)
	assert.Equal(t, "flag-account", app.Client.Account)
}

func TestLoadAppErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown key", "client:\n  colour: blue\n", "config"},
		{"bad duration", "client:\n  transport:\n    connect_timeout: soon\n", "config"},
		{"bad yaml", "client: [\n", "config"},
		{"invalid log level", "log:\n  level: chatty\n", "level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApp(writeFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))

			var ce *errors.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoadAppMissingExplicitFile(t *testing.T) {
	_, err := LoadApp(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestClientSettingsNotValidatedOnLoad(t *testing.T) {
	path := writeFile(t, "client:\n  url: not a url\n")

	app, err := LoadApp(path)
	require.NoError(t, err)

	var ce *errors.ConfigError
	require.True(t, errors.As(app.Client.Validate(), &ce))
	assert.Equal(t, "url", ce.Field)
}

type stubLoader struct{ calls int }

func (s *stubLoader) Load(target any) error {
	s.calls++
	target.(*App).RequestIDHeader = "X-Stub"
	return nil
}

func TestCustomLoader(t *testing.T) {
	var app App
	stub := &stubLoader{}
	c := New(&app, WithLoader(stub))
	require.NoError(t, c.Load())
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "X-Stub", app.RequestIDHeader)
	assert.NotNil(t, c.GetViper())
}
