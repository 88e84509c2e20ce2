package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/storefront/internal/cart"
	"github.com/roach88/storefront/internal/checkout"
	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/store"
	"github.com/roach88/storefront/internal/validate"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	CartFile string
}

// CartFile is the YAML a shopper's cart is read from:
//
//	items:
//	  - id: 10
//	    qty: 2
type CartFile struct {
	Items []CartFileItem `yaml:"items"`
}

// CartFileItem selects a product and how many units to add.
type CartFileItem struct {
	ID  int64 `yaml:"id"`
	Qty int   `yaml:"qty"`
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout <store-slug>",
		Short: "Check out a cart and print the order deep link",
		Long: `Build a cart for a published store from a YAML file, record the order,
decrement stock and print the WhatsApp link carrying the order summary.

Saving the order and decrementing stock are best effort: failures are
reported as warnings and the checkout still completes.

Example:
  storefront checkout doces-da-ana --cart cart.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CartFile, "cart", "", "path to cart YAML (required)")
	_ = cmd.MarkFlagRequired("cart")

	return cmd
}

// LoadCartFile reads and strictly parses a cart file.
func LoadCartFile(path string) (*CartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var cf CartFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(cf.Items) == 0 {
		return nil, fmt.Errorf("items list is required and must be non-empty")
	}
	return &cf, nil
}

// settlementOutput is one stock decrement in JSON output.
type settlementOutput struct {
	ProductID int64  `json:"product_id"`
	Qty       int    `json:"qty"`
	Error     string `json:"error,omitempty"`
}

// checkoutOutput is the JSON payload of checkout.
type checkoutOutput struct {
	Link       string             `json:"link"`
	Summary    string             `json:"summary"`
	Order      *model.Order       `json:"order,omitempty"`
	OrderError string             `json:"order_error,omitempty"`
	Decrements []settlementOutput `json:"decrements"`
	Durable    bool               `json:"durable"`
}

// writerOpener "opens" a link by printing it.
type writerOpener struct {
	w io.Writer
}

func (o writerOpener) Open(_ context.Context, link string) error {
	_, err := fmt.Fprintf(o.w, "Open: %s\n", link)
	return err
}

func runCheckout(opts *CheckoutOptions, storeSlug string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cf, err := LoadCartFile(opts.CartFile)
	if err != nil {
		_ = e.out.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid cart file", err)
	}

	m, err := e.manager(opts.Principal)
	if err != nil {
		return e.out.Fail("checkout", err)
	}
	st, err := m.GetStoreBySlug(cmd.Context(), storeSlug)
	if err != nil {
		return e.out.Fail("checkout", err)
	}
	if st == nil {
		return e.out.Fail("checkout", model.NotFound("store "+storeSlug))
	}

	c := cart.New(cart.WithMinContactLength(e.cfg.MinContactLength))
	c.SetStore(st.ID, st.WhatsAppNumber)
	if err := fillCart(cmd.Context(), e.store, st.ID, cf, c); err != nil {
		return e.out.Fail("checkout", err)
	}

	f, err := e.cfg.Formatter()
	if err != nil {
		return e.out.Fail("checkout", err)
	}
	// Keep stdout clean for the JSON envelope.
	var opener checkout.LinkOpener = writerOpener{w: e.out.Writer}
	if e.out.Format == "json" {
		opener = writerOpener{w: e.out.GetErrWriter()}
	}
	engine := checkout.New(e.store, opener,
		checkout.WithFormatter(f),
		checkout.WithBaseURL(e.cfg.MessagingBaseURL),
		checkout.WithLogger(e.logger),
	)

	res, ok := engine.Checkout(cmd.Context(), c)
	if !ok {
		msg := fmt.Sprintf("cart cannot be checked out: store %s has contact %q", st.Slug, st.WhatsAppNumber)
		_ = e.out.Error(ErrCodeCheckoutBlocked, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	return e.out.Success(checkoutData(res), checkoutText(res))
}

// fillCart adds each cart file line to c after checking it belongs to storeID.
func fillCart(ctx context.Context, st *store.Store, storeID string, cf *CartFile, c *cart.Cart) error {
	v, err := validate.New()
	if err != nil {
		return err
	}
	for _, it := range cf.Items {
		p, err := st.Product(ctx, it.ID)
		if err != nil {
			return fmt.Errorf("product %d: %w", it.ID, err)
		}
		if p.StoreID != storeID {
			return model.NotFound(fmt.Sprintf("product %d in this store", it.ID))
		}
		line := model.LineItem{ProductID: p.ID, Name: p.Name, PriceCents: p.PriceCents, Qty: it.Qty, StoreID: p.StoreID}
		if err := v.LineItem(line); err != nil {
			return err
		}
		for i := 0; i < it.Qty; i++ {
			c.Add(*p)
		}
	}
	return nil
}

func checkoutData(res checkout.Result) checkoutOutput {
	out := checkoutOutput{
		Link:       res.Link,
		Summary:    res.Summary,
		Order:      res.Order,
		Decrements: make([]settlementOutput, len(res.Decrements)),
		Durable:    res.Durable(),
	}
	if res.OrderErr != nil {
		out.OrderError = res.OrderErr.Error()
	}
	for i, s := range res.Decrements {
		out.Decrements[i] = settlementOutput{ProductID: s.ProductID, Qty: s.Qty}
		if s.Err != nil {
			out.Decrements[i].Error = s.Err.Error()
		}
	}
	return out
}

func checkoutText(res checkout.Result) string {
	var b strings.Builder
	b.WriteString(res.Summary)
	if res.Order != nil {
		fmt.Fprintf(&b, "\n\nOrder %s saved", res.Order.ID)
	}
	if res.OrderErr != nil {
		fmt.Fprintf(&b, "\nwarning: order not saved: %v", res.OrderErr)
	}
	for _, s := range res.Decrements {
		if s.Err != nil {
			fmt.Fprintf(&b, "\nwarning: stock not decremented for product %d: %v", s.ProductID, s.Err)
		}
	}
	return b.String()
}
