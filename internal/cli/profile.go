package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/ownership"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the principal's profile",
	}
	cmd.AddCommand(newProfileUpdateCommand(rootOpts))
	return cmd
}

// ProfileUpdateOptions holds flags for profile update.
type ProfileUpdateOptions struct {
	*RootOptions
	FullName  string
	AvatarURL string
}

func newProfileUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "update",
		Short:         "Update the principal's display name or avatar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileUpdate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FullName, "full-name", "", "display name (empty clears)")
	cmd.Flags().StringVar(&opts.AvatarURL, "avatar-url", "", "avatar URL (empty clears)")

	return cmd
}

func runProfileUpdate(opts *ProfileUpdateOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var patch model.ProfilePatch
	if cmd.Flags().Changed("full-name") {
		patch.FullName = model.Nullable(emptyToNil(opts.FullName))
	}
	if cmd.Flags().Changed("avatar-url") {
		patch.AvatarURL = model.Nullable(emptyToNil(opts.AvatarURL))
	}

	m, err := e.manager(opts.Principal)
	if err != nil {
		return e.out.Fail("update profile", err)
	}
	if err := m.UpdateProfile(cmd.Context(), patch); err != nil {
		return e.out.Fail("update profile", err)
	}

	p := m.State().Profile
	if p == nil {
		return e.out.Fail("update profile", ownership.ErrProfileNotFound)
	}
	return e.out.Success(p, describeProfile(p))
}
