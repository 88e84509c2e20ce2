package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/ownership"
	"github.com/roach88/storefront/internal/slug"
)

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Load, create, update or look up stores",
	}
	cmd.AddCommand(newStoreLoadCommand(rootOpts))
	cmd.AddCommand(newStoreCreateCommand(rootOpts))
	cmd.AddCommand(newStoreUpdateCommand(rootOpts))
	cmd.AddCommand(newStoreShowCommand(rootOpts))
	return cmd
}

// loadOutput is the JSON payload of store load.
type loadOutput struct {
	Status     ownership.LoadStatus `json:"status"`
	Configured bool                 `json:"configured"`
	Owner      bool                 `json:"owner"`
	Admin      bool                 `json:"admin"`
	Profile    *model.Profile       `json:"profile,omitempty"`
	Store      *model.Store         `json:"store,omitempty"`
}

func newStoreLoadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "load",
		Short:         "Load the principal's profile and store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			m, err := e.manager(rootOpts.Principal)
			if err != nil {
				return e.out.Fail("load", err)
			}
			res, err := m.LoadCurrentPrincipalStore(cmd.Context())
			if err != nil {
				return e.out.Fail("load", err)
			}

			out := loadOutput{
				Status:     res.Status,
				Configured: m.IsStoreConfigured(),
				Owner:      m.IsStoreOwner(),
				Admin:      m.IsAdmin(),
				Profile:    res.Profile,
				Store:      res.Store,
			}
			text := fmt.Sprintf("Status: %s", res.Status)
			if res.Store != nil {
				text += fmt.Sprintf(" (configured: %t)\n%s", out.Configured, describeStore(res.Store))
			}
			return e.out.Success(out, text)
		},
	}
}

// StoreCreateOptions holds flags for store create.
type StoreCreateOptions struct {
	*RootOptions
	Name        string
	Slug        string
	WhatsApp    string
	Description string
}

func newStoreCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the principal's store, or update it if one exists",
		Long: `Create the principal's store. If the registration trigger already made
a placeholder store, that row is updated instead; the result is the same.

The slug defaults to one derived from --name.

Example:
  storefront store create --principal user-1 --name "Doces da Ana" --whatsapp "11 91234-5678"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "store name (required)")
	cmd.Flags().StringVar(&opts.Slug, "slug", "", "public slug (default derived from name)")
	cmd.Flags().StringVar(&opts.WhatsApp, "whatsapp", "", "WhatsApp number (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "short description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("whatsapp")

	return cmd
}

func runStoreCreate(opts *StoreCreateOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	m, err := e.manager(opts.Principal)
	if err != nil {
		return e.out.Fail("create store", err)
	}

	in := model.StoreInput{
		Name:           opts.Name,
		Slug:           opts.Slug,
		WhatsAppNumber: opts.WhatsApp,
		Description:    opts.Description,
	}
	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name)
		e.out.VerboseLog("Derived slug %q", in.Slug)
	}

	st, err := m.CreateStore(cmd.Context(), in)
	if err != nil {
		return e.out.Fail("create store", err)
	}
	if st == nil {
		return e.out.Fail("create store", ownership.ErrCreateOrUpdateFailed)
	}
	return e.out.Success(st, describeStore(st))
}

// StoreUpdateOptions holds flags for store update.
type StoreUpdateOptions struct {
	*RootOptions
	Name        string
	Slug        string
	WhatsApp    string
	Description string
	LogoURL     string
	Published   bool
}

func newStoreUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreUpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of the principal's store",
		Long: `Update only the fields whose flags are given. An empty --description
or --logo-url clears the field.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreUpdate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "store name")
	cmd.Flags().StringVar(&opts.Slug, "slug", "", "public slug")
	cmd.Flags().StringVar(&opts.WhatsApp, "whatsapp", "", "WhatsApp number")
	cmd.Flags().StringVar(&opts.Description, "description", "", "short description")
	cmd.Flags().StringVar(&opts.LogoURL, "logo-url", "", "logo URL")
	cmd.Flags().BoolVar(&opts.Published, "published", false, "list the store publicly")

	return cmd
}

func (o *StoreUpdateOptions) patch(cmd *cobra.Command) model.StorePatch {
	var p model.StorePatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = model.String(o.Name)
	}
	if flags.Changed("slug") {
		p.Slug = model.String(o.Slug)
	}
	if flags.Changed("whatsapp") {
		p.WhatsAppNumber = model.String(o.WhatsApp)
	}
	if flags.Changed("description") {
		p.Description = model.Nullable(emptyToNil(o.Description))
	}
	if flags.Changed("logo-url") {
		p.LogoURL = model.Nullable(emptyToNil(o.LogoURL))
	}
	if flags.Changed("published") {
		published := o.Published
		p.Published = &published
	}
	return p
}

func runStoreUpdate(opts *StoreUpdateOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	patch := opts.patch(cmd)
	if patch.Empty() {
		_ = e.out.Error(ErrCodeInvalidInput, "nothing to update", nil)
		return NewExitError(ExitCommandError, "nothing to update")
	}
	if patch.Slug != nil && !slug.Valid(*patch.Slug) {
		_ = e.out.Error(ErrCodeInvalidInput, fmt.Sprintf("invalid slug %q", *patch.Slug), nil)
		return NewExitError(ExitCommandError, "invalid slug")
	}

	m, err := e.manager(opts.Principal)
	if err != nil {
		return e.out.Fail("update store", err)
	}
	if _, err := m.LoadCurrentPrincipalStore(cmd.Context()); err != nil {
		return e.out.Fail("update store", err)
	}
	if err := m.UpdateStore(cmd.Context(), patch); err != nil {
		return e.out.Fail("update store", err)
	}

	st := m.State().Store
	if st == nil {
		return e.out.Fail("update store", ownership.ErrNoStoreLoaded)
	}
	return e.out.Success(st, describeStore(st))
}

func newStoreShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <slug>",
		Short:         "Show a published store by slug",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			m, err := e.manager(rootOpts.Principal)
			if err != nil {
				return e.out.Fail("show store", err)
			}
			st, err := m.GetStoreBySlug(cmd.Context(), args[0])
			if err != nil {
				return e.out.Fail("show store", err)
			}
			if st == nil {
				return e.out.Fail("show store", model.NotFound("store "+args[0]))
			}
			return e.out.Success(st, describeStore(st))
		},
	}
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
