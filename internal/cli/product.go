package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/storefront/internal/model"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Seed and list catalog products",
	}
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductListCommand(rootOpts))
	return cmd
}

// ProductAddOptions holds flags for product add.
type ProductAddOptions struct {
	*RootOptions
	Product model.Product
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a catalog product",
		Long: `Add a product to a store's catalog, replacing any product with the same id.

Example:
  storefront product add --store <store-id> --id 10 --name Brigadeiro --price 250 --stock 40`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Product.StoreID, "store", "", "store id (required)")
	cmd.Flags().Int64Var(&opts.Product.ID, "id", 0, "product id (required)")
	cmd.Flags().StringVar(&opts.Product.Name, "name", "", "product name (required)")
	cmd.Flags().Int64Var(&opts.Product.PriceCents, "price", 0, "unit price in cents")
	cmd.Flags().IntVar(&opts.Product.Stock, "stock", 0, "units in stock")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runProductAdd(opts *ProductAddOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p := opts.Product
	if p.ID <= 0 || p.PriceCents < 0 || p.Stock < 0 {
		msg := "id must be positive, price and stock must not be negative"
		_ = e.out.Error(ErrCodeInvalidInput, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	if err := e.store.UpsertProduct(cmd.Context(), p); err != nil {
		return e.out.Fail("add product", err)
	}

	f, err := e.cfg.Formatter()
	if err != nil {
		return e.out.Fail("add product", err)
	}
	return e.out.Success(p, fmt.Sprintf("Product %d: %s %s (%d in stock)", p.ID, p.Name, f.Format(p.PriceCents), p.Stock))
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <store-slug>",
		Short:         "List a published store's products",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			st, err := e.store.PublishedStoreBySlug(cmd.Context(), args[0])
			if err != nil {
				return e.out.Fail("list products", err)
			}
			products, err := e.store.ProductsByStore(cmd.Context(), st.ID)
			if err != nil {
				return e.out.Fail("list products", err)
			}

			f, err := e.cfg.Formatter()
			if err != nil {
				return e.out.Fail("list products", err)
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%s (%d product(s))", st.Name, len(products))
			for _, p := range products {
				fmt.Fprintf(&b, "\n  %d  %-24s %12s  stock %d", p.ID, p.Name, f.Format(p.PriceCents), p.Stock)
			}
			return e.out.Success(products, b.String())
		},
	}
}
