package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/api"
)

// NewStoriesCommand creates the stories command.
func NewStoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "List current stories",
		Long: `List stories that have not expired yet, newest first as the service
returns them.`,
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
			stories, err := client.Stories(ctx)
			if err != nil {
				return remoteError("failed to list stories", err)
			}
			if stories == nil {
				stories = []api.Story{}
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(stories, func(w io.Writer) {
				if len(stories) == 0 {
					fmt.Fprintln(w, "No stories.")
					return
				}
				for _, s := range stories {
					fmt.Fprintf(w, "%s  %s  expires %s  %s\n", s.ID, storyAuthor(s), s.ExpiresAt.Format(time.DateTime), s.ImageURL)
				}
			})
		},
	}
}

func storyAuthor(s api.Story) string {
	switch {
	case s.UserUsername != "":
		return "@" + s.UserUsername
	case s.UserName != "":
		return s.UserName
	default:
		return s.UserID
	}
}

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit profiles",
	}

	cmd.AddCommand(newProfileShowCommand(rootOpts))
	cmd.AddCommand(newProfileUpdateCommand(rootOpts))

	return cmd
}

func newProfileShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a public profile",
		Long: `Show anyone's public profile. No sign-in is needed.

Examples:
  feastverse profile show pastalover`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			client, err := sess.client(ctx)
			if err != nil {
				return err
			}
			p, err := client.UserByUsername(ctx, args[0])
			if err != nil {
				return remoteError("failed to fetch profile", err)
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "@%s  %s\n", p.Username, p.Name)
				if p.Bio != "" {
					fmt.Fprintf(w, "  %s\n", p.Bio)
				}
				if p.Website != "" {
					fmt.Fprintf(w, "  %s\n", p.Website)
				}
			})
		},
	}
}

func newProfileUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var name, username, bio, website, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit your profile",
		Long: `Change fields of the signed-in user's profile. Only the flags given
are sent; an empty value clears the field.

Examples:
  feastverse profile update --bio "pasta first"
  feastverse profile update --name "Pasta Lover" --website https://pasta.example`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var upd api.ProfileUpdate
			set := func(flag string, v *string, dst **string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("name", &name, &upd.Name)
			set("username", &username, &upd.Username)
			set("bio", &bio, &upd.Bio)
			set("website", &website, &upd.Website)
			set("phone", &phone, &upd.Phone)
			if upd == (api.ProfileUpdate{}) {
				return NewExitError(ExitFailure, "nothing to update; pass at least one field flag")
			}

			sess, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			client, err := sess.signedInClient(ctx)
			if err != nil {
				return err
			}
			u, err := client.UpdateProfile(ctx, upd)
			if err != nil {
				return remoteError("failed to update profile", err)
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "Updated %s\n", displayName(*u))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&bio, "bio", "", "bio")
	cmd.Flags().StringVar(&website, "website", "", "website")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")

	return cmd
}

// NewReelCommand creates the reel command group.
func NewReelCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reel",
		Short: "Manage your reels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <reel-id>",
		Short:         "Delete one of your reels",
		Args:          cobra.ExactArgs(1),
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
			if err := client.DeleteReel(ctx, args[0]); err != nil {
				return remoteError("failed to delete reel", err)
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted reel %s\n", args[0])
			})
		},
	})

	return cmd
}
