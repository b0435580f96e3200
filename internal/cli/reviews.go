package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/api"
)

// ReviewOptions holds flags for the review command.
type ReviewOptions struct {
	*RootOptions
	RestaurantID string
	Rating       int
	Comment      string
}

// NewReviewCommand creates the review command.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a restaurant",
		Long: `Post a review of a restaurant as the signed-in user. Ratings run
from 1 to 5.

Examples:
  feastverse review --restaurant rest1 --rating 5 --comment "best carbonara in town"
  feastverse review delete rv_42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RestaurantID, "restaurant", "", "restaurant id (required)")
	_ = cmd.MarkFlagRequired("restaurant")
	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "rating from 1 to 5 (required)")
	_ = cmd.MarkFlagRequired("rating")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "review text")

	cmd.AddCommand(newReviewDeleteCommand(rootOpts))

	return cmd
}

func runReview(opts *ReviewOptions, cmd *cobra.Command) error {
	if opts.Rating < 1 || opts.Rating > 5 {
		return NewExitError(ExitFailure, fmt.Sprintf("rating %d out of range 1-5", opts.Rating))
	}
	ctx := cmd.Context()

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	client, err := sess.signedInClient(ctx)
	if err != nil {
		return err
	}

	rv, err := client.CreateReview(ctx, api.ReviewCreate{
		RestaurantID: opts.RestaurantID,
		Rating:       opts.Rating,
		Text:         opts.Comment,
	})
	if err != nil {
		return remoteError("failed to post review", err)
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(rv, func(w io.Writer) {
		fmt.Fprintf(w, "Posted review %s for %s (%s)\n", rv.ID, rv.RestaurantID, stars(rv.Rating))
	})
}

func newReviewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <review-id>",
		Short:         "Delete one of your reviews",
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
			if err := client.DeleteReview(ctx, args[0]); err != nil {
				return remoteError("failed to delete review", err)
			}

			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted review %s\n", args[0])
			})
		},
	}
}

// ReviewsOptions holds flags for the reviews command.
type ReviewsOptions struct {
	*RootOptions
	RestaurantID string
	Mine         bool
}

// NewReviewsCommand creates the reviews command.
func NewReviewsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReviewsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List reviews",
		Long: `List the reviews of one restaurant, or your own with --mine.

Examples:
  feastverse reviews --restaurant rest1
  feastverse reviews --mine --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviews(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RestaurantID, "restaurant", "", "restaurant id")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "list your own reviews")
	cmd.MarkFlagsMutuallyExclusive("restaurant", "mine")
	cmd.MarkFlagsOneRequired("restaurant", "mine")

	return cmd
}

func runReviews(opts *ReviewsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	client, err := sess.signedInClient(ctx)
	if err != nil {
		return err
	}

	var reviews []api.Review
	if opts.Mine {
		reviews, err = client.MyReviews(ctx)
	} else {
		reviews, err = client.RestaurantReviews(ctx, opts.RestaurantID)
	}
	if err != nil {
		return remoteError("failed to list reviews", err)
	}
	if reviews == nil {
		reviews = []api.Review{}
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(reviews, func(w io.Writer) {
		if len(reviews) == 0 {
			fmt.Fprintln(w, "No reviews.")
			return
		}
		for _, rv := range reviews {
			who := rv.UserName
			if opts.Mine || who == "" {
				who = rv.RestaurantID
			}
			fmt.Fprintf(w, "%s  %s  %s", rv.ID, stars(rv.Rating), who)
			if rv.Text != "" {
				fmt.Fprintf(w, "  %q", rv.Text)
			}
			fmt.Fprintln(w)
		}
	})
}

// stars renders a 1-5 rating.
func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
