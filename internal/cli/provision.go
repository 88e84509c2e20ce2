package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/storefront/internal/ownership"
)

// NewProvisionCommand creates the provision command.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Run the registration trigger for --principal",
		Long: `Create the placeholder profile and store a new principal starts with.

Existing rows are left alone, so running it twice is harmless.

Example:
  storefront provision --principal user-1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(rootOpts, cmd)
		},
	}
}

func runProvision(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.Principal == "" {
		return e.out.Fail("provision", ownership.ErrNotAuthenticated)
	}

	st, err := e.store.ProvisionPrincipal(cmd.Context(), opts.Principal)
	if err != nil {
		return e.out.Fail("provision", err)
	}
	e.out.VerboseLog("Provisioned principal %s", opts.Principal)
	return e.out.Success(st, describeStore(st))
}
