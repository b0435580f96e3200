package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/checkout"
	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

// NewQuoteCommand creates the quote command.
func NewQuoteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Price the current cart",
		Long: `Price the cart restored from the journal against the catalog.

The delivery fee and ETA are those of the restaurant of the first cart
line, even when the cart mixes restaurants.

Examples:
  feastverse quote
  feastverse quote --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(rootOpts, cmd)
		},
	}
}

func runQuote(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.catalog()
	if err != nil {
		return err
	}
	s, _, err := sess.journal.Replay(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay journal", err)
	}

	q := checkout.QuoteCart(s.Cart(), c)
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(q, func(w io.Writer) {
		writeQuote(w, s.Cart(), q)
	})
}

func writeQuote(w io.Writer, cart state.Cart, q checkout.Quote) {
	if cart.IsEmpty() {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	for _, line := range cart.Lines() {
		fmt.Fprintf(w, "%d × %-24s $%.2f\n", line.Qty, line.MenuItem.Name, line.LineTotal())
	}
	fmt.Fprintf(w, "Subtotal  $%.2f\n", q.Subtotal)
	if q.DeliveryFee == 0 {
		fmt.Fprintln(w, "Delivery  Free")
	} else {
		fmt.Fprintf(w, "Delivery  $%.2f\n", q.DeliveryFee)
	}
	fmt.Fprintf(w, "Total     $%.2f\n", q.Total)
	fmt.Fprintf(w, "ETA       %d mins\n", q.EtaMins)
	if q.MixedRestaurants {
		fmt.Fprintln(w, "Note: items come from several restaurants; fee and ETA use the first.")
	}
}

// CheckoutResult is the JSON payload of the checkout command.
type CheckoutResult struct {
	Quote checkout.Quote `json:"quote"`
	Order domain.Order   `json:"order"`
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Long: `Quote the current cart, then set the delivery address and place the
order, exactly as the checkout screen does. The cart is emptied and the
new order starts in "preparing".

Examples:
  feastverse checkout --address "1 Main St"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(rootOpts, address, cmd)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "delivery address (default: the current address)")

	return cmd
}

func runCheckout(opts *RootOptions, address string, cmd *cobra.Command) error {
	setupLogging(cmd.ErrOrStderr(), opts.Verbose)
	ctx := cmd.Context()

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	c, err := sess.catalog()
	if err != nil {
		return err
	}
	st, err := sess.startStore(ctx)
	if err != nil {
		return err
	}
	defer st.Stop()

	current := st.State()
	if address == "" {
		address = current.Address()
	}
	cart := current.Cart()
	q := checkout.QuoteCart(cart, c)

	actions, err := checkout.Place(address, q)
	if errors.Is(err, checkout.ErrEmptyCart) {
		return NewExitError(ExitFailure, "cart is empty")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "checkout failed", err)
	}
	actions = append(actions, state.Navigate{Route: domain.RouteOrders})

	for _, a := range actions {
		if current, err = st.DispatchWait(ctx, a); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("dispatch %s", a.Kind()), err)
		}
	}

	result := CheckoutResult{Quote: q, Order: current.Orders()[0]}
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(result, func(w io.Writer) {
		writeQuote(w, cart, q)
		fmt.Fprintf(w, "Placed %s: $%.2f, %d mins, %s\n", result.Order.ID, result.Order.Total, result.Order.EtaMins, result.Order.Status)
		fmt.Fprintf(w, "Deliver to: %s\n", result.Order.Address)
	})
}
