package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lojinha/cmd/lojinha/ui"
	"lojinha/internal/api"
	"lojinha/internal/cart"
	"lojinha/internal/catalog"
	"lojinha/internal/config"
	"lojinha/internal/logging"
	"lojinha/internal/session"
)

// Version is the release identifier shown by the version command.
const Version = "1.2.0"

var (
	// Global flags
	verbose bool
	baseURL string
	timeout time.Duration

	// Logger for the non-interactive subcommands
	logger *zap.Logger
)

// rootCmd launches the interactive storefront when run without arguments.
var rootCmd = &cobra.Command{
	Use:   "lojinha",
	Short: "lojinha - terminal storefront and catalog manager",
	Long: `lojinha is a terminal client for the lojinha commerce backend.

Browse the product catalog, manage your shopping cart, and administer
products and suppliers, either interactively or through subcommands.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "lojinha" && cmd.CalledAs() == "lojinha" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [name] [email] [password]",
	Short: "Create a new user account",
	Args:  cobra.ExactArgs(3),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE:  runLogout,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	RunE:  runProducts,
}

var suppliersCmd = &cobra.Command{
	Use:   "suppliers",
	Short: "List the supplier directory",
	RunE:  runSuppliers,
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the shopping cart (requires login)",
	RunE:  runCart,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend address and session state",
	RunE:  runStatus,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lojinha %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (default from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(suppliersCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides, and wires the
// client and session gate. Shared by the interactive mode and the
// subcommands.
func setup() (config.Config, *api.Client, *session.Gate, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.Timeout = timeout.String()
	}

	dir, err := config.Dir()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if err := logging.Initialize(dir, cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	}

	client := api.NewWithConfig(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout(),
	})
	gate := session.NewGate(client, session.NewFileStore(dir))
	return cfg, client, gate, nil
}

func requestContext(cfg config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.RequestTimeout())
}

func runInteractive() error {
	cfg, client, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	app := NewApp(cfg, client, gate)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, _, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := gate.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	logger.Info("logged in", zap.String("email", args[0]))
	fmt.Println("Logged in.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, _, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := gate.Register(ctx, args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Println("Account created successfully!")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	_, _, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	gate.Restore()
	gate.Logout()
	fmt.Println("Logged out.")
	return nil
}

func runProducts(cmd *cobra.Command, args []string) error {
	cfg, client, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()
	gate.Restore()

	store := catalog.NewStore(client, gate)
	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := store.LoadProducts(ctx); err != nil {
		return err
	}
	if err := store.LoadSuppliers(ctx); err != nil {
		logger.Warn("could not load suppliers", zap.Error(err))
	}

	suppliers := make(map[int]string)
	for _, s := range store.Suppliers() {
		suppliers[s.ID] = s.Name
	}

	table := ui.NewSimpleTable("Products", []string{"ID", "Name", "Description", "Price", "Stock", "Supplier"})
	for _, p := range store.Products() {
		name := suppliers[p.SupplierID]
		if name == "" {
			name = "-"
		}
		table.AddRow(strconv.Itoa(p.ID), p.Name, p.Description, "R$ "+p.Price, strconv.Itoa(p.Stock), name)
	}
	fmt.Println(table.View(ui.DefaultStyles()))
	return nil
}

func runSuppliers(cmd *cobra.Command, args []string) error {
	cfg, client, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	store := catalog.NewStore(client, gate)
	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := store.LoadSuppliers(ctx); err != nil {
		return err
	}

	table := ui.NewSimpleTable("Suppliers", []string{"ID", "Name", "CNPJ", "Address", "Phone"})
	for _, s := range store.Suppliers() {
		table.AddRow(strconv.Itoa(s.ID), s.Name, s.TaxID, s.Address, s.Phone)
	}
	fmt.Println(table.View(ui.DefaultStyles()))
	return nil
}

func runCart(cmd *cobra.Command, args []string) error {
	cfg, client, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()
	gate.Restore()

	store := cart.NewStore(client, gate)
	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := store.LoadItems(ctx); err != nil {
		return err
	}

	items := store.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	table := ui.NewSimpleTable("Your Cart", []string{"Product", "Quantity", "Price"})
	for _, it := range items {
		table.AddRow(it.Product.Name, strconv.Itoa(it.Quantity), "R$ "+it.LineTotal())
	}
	fmt.Println(table.View(ui.DefaultStyles()))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, client, gate, err := setup()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	authenticated := gate.Restore()
	fmt.Printf("Backend:   %s\n", client.BaseURL())
	fmt.Printf("Timeout:   %s\n", cfg.RequestTimeout())
	if authenticated {
		fmt.Println("Session:   logged in")
	} else {
		fmt.Println("Session:   not logged in")
	}
	return nil
}
