package cli

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/auth"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/Makepad-fr/tada-remote/internal/tui"
	"github.com/Makepad-fr/tada-remote/internal/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the account session",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newSigninCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	return cmd
}

type credentialFlags struct {
	email    string
	password string
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&f.password, "password", "", "Account password (prompted when empty; prefer the prompt)")
}

// resolve fills missing fields from stdin and validates both.
func (f *credentialFlags) resolve(cmd *cobra.Command) (model.Credentials, error) {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.ErrOrStderr()

	email := strings.TrimSpace(f.email)
	if email == "" {
		v, err := prompt(in, out, "email: ")
		if err != nil {
			return model.Credentials{}, err
		}
		email = v
	}
	password := f.password
	if password == "" {
		v, err := promptSecret(cmd.InOrStdin(), in, out, "password: ")
		if err != nil {
			return model.Credentials{}, err
		}
		password = v
	}

	if !tui.ValidEmail(email) {
		return model.Credentials{}, usagef("invalid email %q", email)
	}
	if !tui.ValidPassword(password) {
		return model.Credentials{}, usagef("password needs 8+ characters from letters, digits and ._%%+-")
	}
	return model.Credentials{Email: email, Password: password}, nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", usagef("reading %s: %v", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo when raw is a terminal.
func promptSecret(raw io.Reader, in *bufio.Reader, out io.Writer, label string) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return prompt(in, out, label)
}

func newSignupCmd(app *App) *cobra.Command {
	var cf credentialFlags
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := cf.resolve(cmd)
			if err != nil {
				return err
			}
			res, err := app.client.Signup(cmd.Context(), cred)
			if err != nil {
				return err
			}
			switch {
			case res.StatusCode == http.StatusBadRequest:
				return fmt.Errorf("email %s already in use", cred.Email)
			case res.StatusCode < 200 || res.StatusCode >= 300:
				return &api.StatusError{Method: http.MethodPost, Path: "/auth/signup", StatusCode: res.StatusCode, Message: res.Message}
			}
			ui.OK(cmd.OutOrStdout(), "account created; sign in with `tada auth signin`")
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}

func newSigninCmd(app *App) *cobra.Command {
	var cf credentialFlags
	cmd := &cobra.Command{
		Use:     "signin",
		Aliases: []string{"login"},
		Short:   "Sign in and store the access token",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := cf.resolve(cmd)
			if err != nil {
				return err
			}
			token, err := app.client.Signin(cmd.Context(), cred)
			if err != nil {
				return err
			}
			if err := app.session.Login(token, cred.Email); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "signed in as "+cred.Email)
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Aliases: []string{"signout"},
		Short:   "Forget the stored access token",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(); err != nil {
				return err
			}
			if app.session.LoggedIn() {
				ui.Hint(cmd.ErrOrStderr(), auth.EnvToken+" is set; unset it to stay signed out")
			}
			ui.OK(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ti, err := app.session.Store().GetToken()
			if err != nil {
				return err
			}
			if ti == nil {
				fmt.Fprintln(out, "signed out")
				return nil
			}
			fmt.Fprintf(out, "signed in (source: %s)\n", ti.Source)
			if ti.Email != "" {
				fmt.Fprintf(out, "email:   %s\n", ti.Email)
			}
			fmt.Fprintf(out, "api:     %s\n", app.client.BaseURL())
			if ti.ExpiresAt != nil {
				state := "valid"
				if time.Now().After(*ti.ExpiresAt) {
					state = "expired"
				}
				fmt.Fprintf(out, "expires: %s (%s)\n", ti.ExpiresAt.Local().Format(time.RFC3339), state)
			}
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in identity",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if email := app.session.Email(); email != "" {
				fmt.Fprintln(out, email)
			}
			if payload, ok := auth.DecodeJWTPayload(app.session.Token()); ok {
				fmt.Fprintln(out, payload)
			}
			return nil
		},
	}
}
