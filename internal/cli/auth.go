package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/api"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	GoogleToken string
	Username    string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the remote service",
		Long: `Exchange a Google ID token for a service access token and store it in
the journal database. When the Google identity has no account yet and
--username is given, an account is created under that name.

Examples:
  feastverse login --google-token "$GOOGLE_ID_TOKEN"
  feastverse login --google-token "$GOOGLE_ID_TOKEN" --username pastalover`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GoogleToken, "google-token", "", "Google ID token (required)")
	_ = cmd.MarkFlagRequired("google-token")
	cmd.Flags().StringVar(&opts.Username, "username", "", "username to sign up with if no account exists")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	client, err := sess.client(ctx)
	if err != nil {
		return err
	}

	tok, err := client.GoogleAuth(ctx, opts.GoogleToken)
	if api.IsNotFound(err) {
		if opts.Username == "" {
			return NewExitError(ExitFailure, "no account for this Google identity; pass --username to sign up")
		}
		check, err := client.CheckUsername(ctx, opts.Username)
		if err != nil {
			return WrapExitError(ExitCommandError, "username check failed", err)
		}
		if !check.Available {
			return NewExitError(ExitFailure, fmt.Sprintf("username %q is taken (try: %v)", opts.Username, check.Suggestions))
		}
		tok, err = client.Signup(ctx, opts.GoogleToken, opts.Username)
		if err != nil {
			return WrapExitError(ExitCommandError, "signup failed", err)
		}
	} else if err != nil {
		return WrapExitError(ExitCommandError, "login failed", err)
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(tok.User, func(w io.Writer) {
		fmt.Fprintf(w, "Signed in as %s\n", displayName(tok.User))
	})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Forget the stored access token",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.journal.SaveToken(cmd.Context(), ""); err != nil {
				return WrapExitError(ExitCommandError, "failed to clear token", err)
			}
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(map[string]bool{"signed_in": false}, func(w io.Writer) {
				fmt.Fprintln(w, "Signed out")
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			client, err := sess.signedInClient(ctx)
			if err != nil {
				return err
			}

			u, err := client.Me(ctx)
			if err != nil {
				return remoteError("failed to fetch profile", err)
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "%s <%s>\n", displayName(*u), u.Email)
			})
		},
	}
}

func displayName(u api.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
