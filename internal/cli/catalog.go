package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/catalog"
	"github.com/roach88/feastverse/internal/domain"
)

// CatalogIssue is one validation failure in output form.
type CatalogIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogValidateResult holds the validate output.
type CatalogValidateResult struct {
	Path        string         `json:"path"`
	Valid       bool           `json:"valid"`
	Restaurants int            `json:"restaurants"`
	Reels       int            `json:"reels"`
	Issues      []CatalogIssue `json:"issues,omitempty"`
}

// CatalogShowResult holds the show output.
type CatalogShowResult struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Reels       []domain.Reel       `json:"reels"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and fetch restaurant catalogs",
		Long: `Work with catalog files: restaurants, their menus and feed reels.

Catalogs may be CUE, JSON or YAML. CUE and JSON files are checked against
the built-in schema; every catalog must also pass the catalog rules
(unique ids, non-negative prices, reels pointing at known restaurants).`,
	}

	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	cmd.AddCommand(newCatalogShowCommand(rootOpts))
	cmd.AddCommand(newCatalogPullCommand(rootOpts))

	return cmd
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a catalog file",
		Long: `Validate a catalog file and report every problem found.

Exit codes:
  0 - Catalog is valid
  1 - Catalog has validation errors
  2 - Command error (file missing, unsupported format)

Examples:
  feastverse catalog validate ./catalog.cue
  feastverse catalog validate ./catalog.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(rootOpts, args[0], cmd)
		},
	}
}

func runCatalogValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("catalog not found: %s", path), err)
	}

	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	result := CatalogValidateResult{Path: path}

	c, err := catalog.Load(path)
	var verrs catalog.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		for _, v := range verrs {
			result.Issues = append(result.Issues, CatalogIssue{Field: v.Field, Message: v.Message})
		}
		message := fmt.Sprintf("%d validation error(s)", len(result.Issues))
		if opts.Format == "json" {
			if err := f.Error("E_CATALOG_INVALID", message, result); err != nil {
				return err
			}
		} else {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✗ %s\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(w, "  %s: %s\n", issue.Field, issue.Message)
			}
		}
		return NewExitError(ExitFailure, message)
	case err != nil:
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	result.Valid = true
	result.Restaurants = len(c.Restaurants())
	result.Reels = len(c.Reels())
	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s: %d restaurant(s), %d reel(s)\n", path, result.Restaurants, result.Reels)
	})
}

func newCatalogShowCommand(rootOpts *RootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show a catalog",
		Long: `Show restaurants, menus and reels. Without a path, the configured
catalog (or the built-in one) is shown.

Examples:
  feastverse catalog show
  feastverse catalog show ./catalog.yaml --search cafe`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig(rootOpts)
				if err != nil {
					return err
				}
				path = cfg.CatalogPath
			}
			return runCatalogShow(rootOpts, path, search, cmd)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "only restaurants whose name or cuisine contains this")

	return cmd
}

func runCatalogShow(opts *RootOptions, path, search string, cmd *cobra.Command) error {
	c, err := loadCatalog(path)
	if err != nil {
		return err
	}

	result := CatalogShowResult{Restaurants: c.Restaurants(), Reels: c.Reels()}
	if search != "" {
		result.Restaurants = c.Search(search)
		result.Reels = nil
	}
	if result.Restaurants == nil {
		result.Restaurants = []domain.Restaurant{}
	}
	if result.Reels == nil {
		result.Reels = []domain.Reel{}
	}

	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(result, func(w io.Writer) {
		if len(result.Restaurants) == 0 {
			fmt.Fprintln(w, "No restaurants.")
		}
		for _, r := range result.Restaurants {
			fmt.Fprintf(w, "%s  %s (%s)  ★ %.1f  %d min  fee $%.2f\n", r.ID, r.Name, r.Cuisine, r.Rating, r.EtaMins, r.DeliveryFee)
			for _, m := range r.Menu {
				sold := ""
				if !m.Available {
					sold = "  (sold out)"
				}
				fmt.Fprintf(w, "  %s  %-24s $%.2f%s\n", m.ID, m.Name, m.Price, sold)
			}
		}
		if len(result.Reels) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Reels:")
			for _, reel := range result.Reels {
				fmt.Fprintf(w, "  %s  %s  ♥ %d  @%s\n", reel.ID, reel.Title, reel.Likes, reel.RestaurantID)
			}
		}
	})
}

func newCatalogPullCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the catalog from the remote service",
		Long: `Fetch restaurants and reels from the remote service, validate them and
write them as a YAML catalog.

Examples:
  feastverse catalog pull
  feastverse catalog pull -o catalog.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogPull(rootOpts, output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

// catalogSource is the part of the API client catalog pull reads.
type catalogSource interface {
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	Reels(ctx context.Context) ([]domain.Reel, error)
}

func runCatalogPull(opts *RootOptions, output string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	client, err := sess.client(ctx)
	if err != nil {
		return err
	}

	c, err := pullCatalog(ctx, client)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer file.Close()
		w = file
	}
	if err := c.Encode(w); err != nil {
		return WrapExitError(ExitCommandError, "failed to write catalog", err)
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d restaurant(s), %d reel(s) to %s\n", len(c.Restaurants()), len(c.Reels()), output)
	}
	return nil
}

func pullCatalog(ctx context.Context, src catalogSource) (*catalog.Catalog, error) {
	restaurants, err := src.Restaurants(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to fetch restaurants", err)
	}
	reels, err := src.Reels(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to fetch reels", err)
	}
	c, err := catalog.New(restaurants, reels)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "remote catalog is invalid", err)
	}
	return c, nil
}
