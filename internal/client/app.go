package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/budget-keeper/internal/adapter"
	"github.com/MKhiriev/budget-keeper/internal/logger"
)

const usage = `usage: budget-keeper [-a address] [-timeout d] <command> [args]

commands:
  register                 create an account and show the Recovery Key
  login                    sign in and keep the session
  logout                   forget the session
  change-password          replace the password
  forgot-password          ask the server to send reset instructions
  reset-password           set a new password with the Recovery Key
  rotate-recovery-key      replace the Recovery Key
  docs list [prefix]       list document keys
  docs get <key>           print a document
  docs put <key> [file]    store a JSON document from file or stdin
  docs rm <key>            delete a document
  version                  print the server version`

type command func(ctx context.Context, args []string) error

type App struct {
	server  adapter.ServerAdapter
	ui      UI
	session SessionStore

	// stdin feeds "docs put" when no file is given.
	stdin io.Reader

	commands map[string]command

	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, ui UI, session SessionStore, logger *logger.Logger) *App {
	app := &App{
		server:  server,
		ui:      ui,
		session: session,
		stdin:   os.Stdin,
		logger:  logger,
	}

	app.commands = map[string]command{
		"register":            app.register,
		"login":               app.login,
		"logout":              app.logout,
		"change-password":     app.changePassword,
		"forgot-password":     app.forgotPassword,
		"reset-password":      app.resetPassword,
		"rotate-recovery-key": app.rotateRecoveryKey,
		"docs":                app.docs,
		"version":             app.version,
	}

	return app
}

// Run executes the command named by args[0]. Failures are shown through the
// UI and returned.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.ui.Line(usage)
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.ui.Line(usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	if err := cmd(ctx, args[1:]); err != nil {
		a.logger.Debug().Err(err).Str("command", args[0]).Msg("command failed")
		if errors.Is(err, adapter.ErrUnauthorized) && a.server.Token() != "" {
			// the stored token expired or belongs to a removed account
			if clearErr := a.session.Clear(); clearErr != nil {
				a.logger.Warn().Err(clearErr).Msg("failed to clear stale session")
			}
		}
		a.ui.Failure(err)
		return err
	}
	return nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	email, err := a.ui.Prompt(ctx, "Email:")
	if err != nil {
		return err
	}
	password, err := a.newPassword(ctx, "Password:")
	if err != nil {
		return err
	}

	registration, err := a.server.Register(ctx, email, password)
	if err != nil {
		return err
	}
	if err = a.session.Save(a.server.Token()); err != nil {
		return err
	}

	a.ui.Success("registered as " + registration.User.Email)
	a.ui.RecoveryKey(registration.RecoveryKey)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.ui.Prompt(ctx, "Email:")
	if err != nil {
		return err
	}
	password, err := a.ui.PromptPassword(ctx, "Password:")
	if err != nil {
		return err
	}

	session, err := a.server.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err = a.session.Save(a.server.Token()); err != nil {
		return err
	}

	a.ui.Success("logged in as " + session.User.Email)
	return nil
}

func (a *App) logout(context.Context, []string) error {
	if err := a.session.Clear(); err != nil {
		return err
	}
	a.ui.Success("logged out")
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	email, err := a.ui.Prompt(ctx, "Email:")
	if err != nil {
		return err
	}
	oldPassword, err := a.ui.PromptPassword(ctx, "Current password:")
	if err != nil {
		return err
	}
	newPassword, err := a.newPassword(ctx, "New password:")
	if err != nil {
		return err
	}

	if err = a.server.ChangePassword(ctx, email, oldPassword, newPassword); err != nil {
		return err
	}
	if err = a.session.Save(a.server.Token()); err != nil {
		return err
	}

	a.ui.Success("password changed")
	return nil
}

func (a *App) forgotPassword(ctx context.Context, _ []string) error {
	email, err := a.ui.Prompt(ctx, "Email:")
	if err != nil {
		return err
	}
	if err = a.server.ForgotPassword(ctx, email); err != nil {
		return err
	}

	a.ui.Success("if the account exists, reset instructions are on their way")
	return nil
}

func (a *App) resetPassword(ctx context.Context, _ []string) error {
	email, err := a.ui.Prompt(ctx, "Email:")
	if err != nil {
		return err
	}
	recoveryKey, err := a.ui.PromptPassword(ctx, "Recovery Key:")
	if err != nil {
		return err
	}
	newPassword, err := a.newPassword(ctx, "New password:")
	if err != nil {
		return err
	}

	if err = a.server.ResetPassword(ctx, email, recoveryKey, newPassword); err != nil {
		return err
	}

	a.ui.Success("password reset, log in with the new password")
	return nil
}

func (a *App) rotateRecoveryKey(ctx context.Context, _ []string) error {
	if err := a.restoreSession(); err != nil {
		return err
	}
	password, err := a.ui.PromptPassword(ctx, "Password:")
	if err != nil {
		return err
	}

	recoveryKey, err := a.server.RotateRecoveryKey(ctx, password)
	if err != nil {
		return err
	}

	a.ui.Success("recovery key replaced, the old one no longer works")
	a.ui.RecoveryKey(recoveryKey)
	return nil
}

func (a *App) docs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: docs list|get|put|rm", ErrMissingArgument)
	}
	if err := a.restoreSession(); err != nil {
		return err
	}

	sub, args := args[0], args[1:]
	switch sub {
	case "list", "ls":
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		keys, err := a.server.ListDocuments(ctx, prefix)
		if err != nil {
			return err
		}
		a.ui.Keys(keys)
		return nil
	case "get":
		key, err := requireKey(args)
		if err != nil {
			return err
		}
		payload, err := a.server.ReadDocument(ctx, key)
		if err != nil {
			return err
		}
		a.ui.Document(payload)
		return nil
	case "put":
		key, err := requireKey(args)
		if err != nil {
			return err
		}
		payload, err := a.readPayload(args[1:])
		if err != nil {
			return err
		}
		if err = a.server.WriteDocument(ctx, key, payload); err != nil {
			return err
		}
		a.ui.Success("stored " + key)
		return nil
	case "rm", "delete":
		key, err := requireKey(args)
		if err != nil {
			return err
		}
		if err = a.server.DeleteDocument(ctx, key); err != nil {
			return err
		}
		a.ui.Success("deleted " + key)
		return nil
	default:
		return fmt.Errorf("%w: docs %s", ErrUnknownCommand, sub)
	}
}

func (a *App) version(ctx context.Context, _ []string) error {
	serverVersion, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	a.ui.Line("server version: " + serverVersion)
	return nil
}

// newPassword asks twice and insists on both answers matching.
func (a *App) newPassword(ctx context.Context, label string) (string, error) {
	password, err := a.ui.PromptPassword(ctx, label)
	if err != nil {
		return "", err
	}
	confirmation, err := a.ui.PromptPassword(ctx, "Repeat "+strings.ToLower(label))
	if err != nil {
		return "", err
	}
	if password != confirmation {
		return "", ErrPasswordsMismatch
	}
	return password, nil
}

func (a *App) restoreSession() error {
	token, err := a.session.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotLoggedIn
	}
	a.server.SetToken(token)
	return nil
}

func (a *App) readPayload(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read document file: %w", err)
		}
		return payload, nil
	}

	payload, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("read document from stdin: %w", err)
	}
	return payload, nil
}

func requireKey(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%w: document key", ErrMissingArgument)
	}
	return args[0], nil
}
