package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/budget-keeper/internal/adapter"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/mock"
	"github.com/MKhiriev/budget-keeper/models"
)

// fakeUI answers prompts from a script and records everything shown.
type fakeUI struct {
	answers []string

	successes    []string
	failures     []error
	recoveryKeys []string
	keys         [][]string
	documents    [][]byte
	lines        []string
}

func (f *fakeUI) next() (string, error) {
	if len(f.answers) == 0 {
		return "", errors.New("no scripted answer left")
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeUI) Prompt(context.Context, string) (string, error)         { return f.next() }
func (f *fakeUI) PromptPassword(context.Context, string) (string, error) { return f.next() }
func (f *fakeUI) Success(message string)                                 { f.successes = append(f.successes, message) }
func (f *fakeUI) Failure(err error)                                      { f.failures = append(f.failures, err) }
func (f *fakeUI) RecoveryKey(recoveryKey string)                         { f.recoveryKeys = append(f.recoveryKeys, recoveryKey) }
func (f *fakeUI) Keys(keys []string)                                     { f.keys = append(f.keys, keys) }
func (f *fakeUI) Document(payload []byte)                                { f.documents = append(f.documents, payload) }
func (f *fakeUI) Line(text string)                                       { f.lines = append(f.lines, text) }

type testApp struct {
	app     *App
	server  *mock.MockServerAdapter
	ui      *fakeUI
	session SessionStore
}

func newTestApp(t *testing.T, answers ...string) *testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	ta := &testApp{
		server:  mock.NewMockServerAdapter(ctrl),
		ui:      &fakeUI{answers: answers},
		session: NewFileSessionStore(filepath.Join(t.TempDir(), "session")),
	}
	ta.app = NewApp(ta.server, ta.ui, ta.session, logger.Nop())
	return ta
}

func (ta *testApp) loggedIn(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, ta.session.Save(token))
	ta.server.EXPECT().SetToken(token)
}

func TestRun_Usage(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.app.Run(context.Background(), nil))
	require.Len(t, ta.ui.lines, 1)
	assert.Contains(t, ta.ui.lines[0], "usage:")

	err := ta.app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Len(t, ta.ui.lines, 2)
}

func TestRun_Register(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "S3cretPW!", "S3cretPW!")
	ctx := context.Background()

	ta.server.EXPECT().Register(ctx, "alice@x.com", "S3cretPW!").Return(models.RegisterResponse{
		Token:       "tok-1",
		User:        models.PublicUser{ID: "u1", Email: "alice@x.com"},
		RecoveryKey: "rec-key",
	}, nil)
	ta.server.EXPECT().Token().Return("tok-1")

	require.NoError(t, ta.app.Run(ctx, []string{"register"}))

	assert.Equal(t, []string{"rec-key"}, ta.ui.recoveryKeys)
	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestRun_RegisterPasswordMismatch(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "S3cretPW!", "S3cretPW?")

	err := ta.app.Run(context.Background(), []string{"register"})
	assert.ErrorIs(t, err, ErrPasswordsMismatch)
	assert.Equal(t, []error{err}, ta.ui.failures)
}

func TestRun_LoginAndLogout(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "S3cretPW!")
	ctx := context.Background()

	ta.server.EXPECT().Login(ctx, "alice@x.com", "S3cretPW!").Return(models.AuthResponse{
		Token: "tok-2",
		User:  models.PublicUser{ID: "u1", Email: "alice@x.com"},
	}, nil)
	ta.server.EXPECT().Token().Return("tok-2")

	require.NoError(t, ta.app.Run(ctx, []string{"login"}))
	token, _ := ta.session.Load()
	assert.Equal(t, "tok-2", token)

	require.NoError(t, ta.app.Run(ctx, []string{"logout"}))
	token, _ = ta.session.Load()
	assert.Empty(t, token)
}

func TestRun_LoginRejected(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "wrong")
	ctx := context.Background()

	ta.server.EXPECT().Login(ctx, "alice@x.com", "wrong").Return(models.AuthResponse{}, adapter.ErrUnauthorized)
	ta.server.EXPECT().Token().Return("")

	err := ta.app.Run(ctx, []string{"login"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestRun_ChangePassword(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "S3cretPW!", "N3wPassWd", "N3wPassWd")
	ctx := context.Background()

	ta.server.EXPECT().ChangePassword(ctx, "alice@x.com", "S3cretPW!", "N3wPassWd").Return(nil)
	ta.server.EXPECT().Token().Return("tok-3")

	require.NoError(t, ta.app.Run(ctx, []string{"change-password"}))
	token, _ := ta.session.Load()
	assert.Equal(t, "tok-3", token)
}

func TestRun_ForgotAndResetPassword(t *testing.T) {
	ta := newTestApp(t, "alice@x.com", "alice@x.com", "rec-key", "N3wPassWd", "N3wPassWd")
	ctx := context.Background()

	ta.server.EXPECT().ForgotPassword(ctx, "alice@x.com").Return(nil)
	ta.server.EXPECT().ResetPassword(ctx, "alice@x.com", "rec-key", "N3wPassWd").Return(nil)

	require.NoError(t, ta.app.Run(ctx, []string{"forgot-password"}))
	require.NoError(t, ta.app.Run(ctx, []string{"reset-password"}))
	assert.Len(t, ta.ui.successes, 2)
}

func TestRun_RotateRecoveryKey(t *testing.T) {
	ta := newTestApp(t, "S3cretPW!")
	ctx := context.Background()
	ta.loggedIn(t, "tok-1")

	ta.server.EXPECT().RotateRecoveryKey(ctx, "S3cretPW!").Return("rec-new", nil)

	require.NoError(t, ta.app.Run(ctx, []string{"rotate-recovery-key"}))
	assert.Equal(t, []string{"rec-new"}, ta.ui.recoveryKeys)
}

func TestRun_DocsRequireSession(t *testing.T) {
	ta := newTestApp(t)

	err := ta.app.Run(context.Background(), []string{"docs", "list"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	err = ta.app.Run(context.Background(), []string{"rotate-recovery-key"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestRun_Docs(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, ta.session.Save("tok-1"))
	ta.server.EXPECT().SetToken("tok-1").Times(4)

	ta.server.EXPECT().ListDocuments(ctx, "2026/").Return([]string{"2026/01"}, nil)
	ta.server.EXPECT().ReadDocument(ctx, "weeks").Return([]byte(`{"v":1}`), nil)
	ta.server.EXPECT().WriteDocument(ctx, "weeks", []byte(`{"v":2}`)).Return(nil)
	ta.server.EXPECT().DeleteDocument(ctx, "weeks").Return(nil)

	require.NoError(t, ta.app.Run(ctx, []string{"docs", "list", "2026/"}))
	require.NoError(t, ta.app.Run(ctx, []string{"docs", "get", "weeks"}))

	ta.app.stdin = strings.NewReader(`{"v":2}`)
	require.NoError(t, ta.app.Run(ctx, []string{"docs", "put", "weeks"}))
	require.NoError(t, ta.app.Run(ctx, []string{"docs", "rm", "weeks"}))

	assert.Equal(t, [][]string{{"2026/01"}}, ta.ui.keys)
	assert.Equal(t, [][]byte{[]byte(`{"v":1}`)}, ta.ui.documents)
	assert.Equal(t, []string{"stored weeks", "deleted weeks"}, ta.ui.successes)
}

func TestRun_DocsPutFromFile(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.loggedIn(t, "tok-1")

	path := filepath.Join(t.TempDir(), "weeks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weeks":[]}`), 0o600))

	ta.server.EXPECT().WriteDocument(ctx, "weeks", []byte(`{"weeks":[]}`)).Return(nil)
	require.NoError(t, ta.app.Run(ctx, []string{"docs", "put", "weeks", path}))
}

func TestRun_DocsArguments(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	err := ta.app.Run(ctx, []string{"docs"})
	assert.ErrorIs(t, err, ErrMissingArgument)

	ta.loggedIn(t, "tok-1")
	err = ta.app.Run(ctx, []string{"docs", "get"})
	assert.ErrorIs(t, err, ErrMissingArgument)

	ta.server.EXPECT().SetToken("tok-1")
	err = ta.app.Run(ctx, []string{"docs", "move"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

// A token the server no longer accepts is dropped so the next run asks
// for a login instead of failing the same way.
func TestRun_StaleSessionIsCleared(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.loggedIn(t, "tok-old")

	ta.server.EXPECT().ListDocuments(ctx, "").Return(nil, adapter.ErrUnauthorized)
	ta.server.EXPECT().Token().Return("tok-old")

	err := ta.app.Run(ctx, []string{"docs", "list"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	token, err := ta.session.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRun_Version(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	ta.server.EXPECT().Version(ctx).Return("1.2.3", nil)
	require.NoError(t, ta.app.Run(ctx, []string{"version"}))
	assert.Equal(t, []string{"server version: 1.2.3"}, ta.ui.lines)
}
