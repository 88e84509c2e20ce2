package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/storefront/internal/config"
	"github.com/roach88/storefront/internal/ownership"
	"github.com/roach88/storefront/internal/store"
	"github.com/roach88/storefront/internal/validate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // overrides config.Database
	Principal  string // signed-in principal id
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the storefront CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront - one store per owner, checkout over WhatsApp",
		Long: `Manage a store owner's single store and turn shopper carts into
orders delivered through a messaging deep link.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvPath+")")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Principal, "principal", "", "signed-in principal id")

	cmd.AddCommand(NewProvisionCommand(opts))
	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewProductCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))

	return cmd
}

// env is everything a command needs once flags are parsed.
type env struct {
	cfg    config.Config
	store  *store.Store
	logger *slog.Logger
	out    *OutputFormatter
}

// openEnv configures logging, loads config and opens the database.
// Callers must Close the returned env.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Configure logging based on verbose flag
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database,
		store.WithPlaceholder(cfg.Placeholder.Name, cfg.Placeholder.WhatsApp),
	)
	if err != nil {
		_ = out.Error(ErrCodeDatabase, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return &env{cfg: cfg, store: st, logger: logger, out: out}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing database", "error", err)
	}
}

// manager builds the ownership manager for the --principal session.
func (e *env) manager(principal string) (*ownership.Manager, error) {
	v, err := validate.New()
	if err != nil {
		return nil, err
	}
	return ownership.New(e.store, ownership.StaticSession(principal),
		ownership.WithLogger(e.logger),
		ownership.WithValidator(v),
		ownership.WithPlaceholder(ownership.Placeholder{
			Name:     e.cfg.Placeholder.Name,
			WhatsApp: e.cfg.Placeholder.WhatsApp,
		}),
	), nil
}
