package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"odoo-dashboard/internal/adapters/cli"
	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/odoo"
)

type fakeBackend struct {
	loginErr *odoo.Failure
	infoErr  *odoo.Failure
	calls    []string
}

func (f *fakeBackend) Login(_ context.Context, username, password string) odoo.Result[*odoo.LoginInfo] {
	f.calls = append(f.calls, "login:"+username+":"+password)
	if f.loginErr != nil {
		return odoo.Fail[*odoo.LoginInfo](f.loginErr)
	}
	return odoo.Ok(&odoo.LoginInfo{UserID: 2, CompanyID: 1, Name: "Mitchell Admin", Username: username})
}

func (f *fakeBackend) GetUserInfo(context.Context) odoo.Result[any] {
	f.calls = append(f.calls, "info")
	if f.infoErr != nil {
		return odoo.Fail[any](f.infoErr)
	}
	return odoo.Ok[any](map[string]any{"name": "Mitchell Admin", "login": "admin"})
}

func (f *fakeBackend) Logout(context.Context) odoo.Result[struct{}] {
	f.calls = append(f.calls, "logout")
	return odoo.Ok(struct{}{})
}

func env(b cli.Backend, out *bytes.Buffer) cli.Env {
	cfg := config.Default()
	cfg.Server.JWTSecret = "super-secret"
	return cli.Env{
		Config:   cfg,
		Backend:  b,
		Out:      out,
		Password: func(string) (string, error) { return "pw", nil },
	}
}

func TestCheck_Success(t *testing.T) {
	b := &fakeBackend{}
	var out bytes.Buffer

	err := cli.Run(context.Background(), env(b, &out), []string{"check", "demo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"login:demo:pw", "info", "logout"}, b.calls)
	assert.Contains(t, out.String(), "User ID  : 2")
	assert.Contains(t, out.String(), `"login": "admin"`)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestCheck_DefaultUsername(t *testing.T) {
	b := &fakeBackend{}
	var out bytes.Buffer

	require.NoError(t, cli.Run(context.Background(), env(b, &out), []string{"check"}))
	assert.Equal(t, "login:admin:pw", b.calls[0])
}

func TestCheck_LoginFailure(t *testing.T) {
	b := &fakeBackend{loginErr: &odoo.Failure{Kind: odoo.FailureInvalidCredentials, Message: odoo.InvalidCredentialsMessage}}
	var out bytes.Buffer

	err := cli.Run(context.Background(), env(b, &out), []string{"check"})
	require.Error(t, err)
	assert.ErrorIs(t, err, odoo.ErrInvalidCredentials)
	assert.Equal(t, []string{"login:admin:pw"}, b.calls)
}

func TestCheck_UserInfoFailureStillLogsOut(t *testing.T) {
	b := &fakeBackend{infoErr: &odoo.Failure{Kind: odoo.FailureServer, Message: "Access Denied"}}
	var out bytes.Buffer

	err := cli.Run(context.Background(), env(b, &out), []string{"check"})
	require.Error(t, err)
	assert.ErrorIs(t, err, odoo.ErrServer)
	assert.Equal(t, []string{"login:admin:pw", "info", "logout"}, b.calls)
}

func TestCheck_PasswordError(t *testing.T) {
	b := &fakeBackend{}
	var out bytes.Buffer
	e := env(b, &out)
	e.Password = func(string) (string, error) { return "", errors.New("no tty") }

	err := cli.Run(context.Background(), e, []string{"check"})
	require.Error(t, err)
	assert.Empty(t, b.calls)
}

func TestConfig_PrintsRedactedYAML(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, cli.Run(context.Background(), env(&fakeBackend{}, &out), []string{"config"}))
	assert.NotContains(t, out.String(), "super-secret")

	var got config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "********", got.Server.JWTSecret)
	assert.Equal(t, config.Default().Odoo.Database, got.Odoo.Database)
	assert.Len(t, got.Dashboard.DefaultWidgets, 3)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	e := env(&fakeBackend{}, &out)

	assert.ErrorIs(t, cli.Run(context.Background(), e, nil), cli.ErrUsage)
	assert.ErrorIs(t, cli.Run(context.Background(), e, []string{"bogus"}), cli.ErrUsage)
}
