package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lojinha/cmd/lojinha/ui"
	"lojinha/internal/api"
	"lojinha/internal/cart"
	"lojinha/internal/catalog"
	"lojinha/internal/config"
	"lojinha/internal/logging"
	"lojinha/internal/session"
)

// Result messages produced by commands running off the update loop. Each
// carries the error (nil on success); the updated data is read back from
// the stores when the message arrives.
type (
	productsLoadedMsg  struct{ err error }
	suppliersLoadedMsg struct{ err error }
	cartLoadedMsg      struct{ err error }

	loginResultMsg    struct{ err error }
	registerResultMsg struct{ err error }

	cartAddResultMsg struct {
		productID int
		err       error
	}
	cartRemoveResultMsg struct{ err error }

	productAddResultMsg    struct{ err error }
	productSaveResultMsg   struct{ err error }
	productDeleteResultMsg struct{ err error }

	supplierAddResultMsg    struct{ err error }
	supplierSaveResultMsg   struct{ err error }
	supplierDeleteResultMsg struct{ err error }
)

// App is the root model. It owns the stores and the session gate; page
// models hold only view state and emit intent messages, which App turns
// into store calls running as commands.
type App struct {
	cfg    config.Config
	client *api.Client
	gate   *session.Gate
	store  *catalog.Store
	cart   *cart.Store

	page   ui.Page
	styles ui.Styles

	loginPage    ui.LoginPageModel
	accountPage  ui.AccountPageModel
	itemPage     ui.ItemPageModel
	cartPage     ui.CartPageModel
	productPage  ui.ProductPageModel
	supplierPage ui.SupplierPageModel

	spinner spinner.Model
	loading int // in-flight command count
	width   int
	height  int
}

// NewApp wires the client, stores and pages together. The stored session,
// if any, is restored before the first view renders.
func NewApp(cfg config.Config, client *api.Client, gate *session.Gate) *App {
	restored := gate.Restore()

	styles := ui.DefaultStyles()
	if cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	} else if cfg.Theme == "light" {
		styles = ui.NewStyles(ui.LightTheme())
	}

	app := &App{
		cfg:          cfg,
		client:       client,
		gate:         gate,
		store:        catalog.NewStore(client, gate),
		cart:         cart.NewStore(client, gate),
		page:         ui.Initial(restored),
		styles:       styles,
		loginPage:    ui.NewLoginPageModel(styles),
		accountPage:  ui.NewAccountPageModel(styles),
		itemPage:     ui.NewItemPageModel(styles),
		cartPage:     ui.NewCartPageModel(styles),
		productPage:  ui.NewProductPageModel(styles),
		supplierPage: ui.NewSupplierPageModel(styles),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	app.spinner = sp

	logging.Boot("app start, page=%s authenticated=%v", app.page, restored)
	return app
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
}

// Init kicks off the initial data loads.
func (a *App) Init() tea.Cmd {
	loads := []tea.Cmd{a.loadProductsCmd(), a.loadSuppliersCmd()}
	if a.gate.Authenticated() {
		loads = append(loads, a.loadCartCmd())
	}
	a.loading = len(loads)
	return tea.Batch(append([]tea.Cmd{a.spinner.Tick}, loads...)...)
}

func (a *App) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return productsLoadedMsg{err: a.store.LoadProducts(ctx)}
	}
}

func (a *App) loadSuppliersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return suppliersLoadedMsg{err: a.store.LoadSuppliers(ctx)}
	}
}

func (a *App) loadCartCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return cartLoadedMsg{err: a.cart.LoadItems(ctx)}
	}
}

// Update routes messages: global keys first, then intent messages from
// pages, then command results, then whatever the active page wants.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}
		return a.updatePage(msg)

	// --- intents ---

	case ui.LoginSubmitMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return loginResultMsg{err: a.gate.Login(ctx, msg.Email, msg.Password)}
		}

	case ui.RegisterSubmitMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return registerResultMsg{err: a.gate.Register(ctx, msg.Name, msg.Email, msg.Password)}
		}

	case ui.AddToCartMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return cartAddResultMsg{
				productID: msg.ProductID,
				err:       a.cart.AddItem(ctx, msg.ProductID, msg.Quantity),
			}
		}

	case ui.RemoveFromCartMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			if err := a.cart.RemoveItem(ctx, msg.ProductID); err != nil {
				return cartRemoveResultMsg{err: err}
			}
			return cartRemoveResultMsg{err: a.cart.LoadItems(ctx)}
		}

	case ui.AddProductMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return productAddResultMsg{err: a.store.AddProduct(ctx, msg.Input)}
		}

	case ui.EditProductFieldMsg:
		// Local mutation only; nothing leaves the process.
		a.store.EditField(msg.ProductID, msg.Field, msg.Value)
		a.refreshProductPage()
		return a, nil

	case ui.SetSupplierMsg:
		a.store.SetProductSupplier(msg.ProductID, msg.SupplierID)
		a.refreshProductPage()
		return a, nil

	case ui.SaveProductMsg:
		a.loading++
		a.refreshProductPage()
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return productSaveResultMsg{err: a.store.SaveProduct(ctx, msg.ProductID)}
		}

	case ui.DeleteProductMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return productDeleteResultMsg{err: a.store.DeleteProduct(ctx, msg.ProductID)}
		}

	case ui.EditSupplierFieldMsg:
		a.store.EditSupplierField(msg.SupplierID, msg.Field, msg.Value)
		a.refreshSupplierPage()
		return a, nil

	case ui.AddSupplierMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return supplierAddResultMsg{err: a.store.AddSupplier(ctx, msg.Input)}
		}

	case ui.SaveSupplierMsg:
		a.loading++
		a.refreshSupplierPage()
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return supplierSaveResultMsg{err: a.store.SaveSupplier(ctx, msg.SupplierID)}
		}

	case ui.DeleteSupplierMsg:
		a.loading++
		return a, func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			return supplierDeleteResultMsg{err: a.store.DeleteSupplier(ctx, msg.SupplierID)}
		}

	// --- results ---

	case productsLoadedMsg:
		a.loading--
		a.refreshItemPage()
		a.refreshProductPage()
		return a, nil

	case suppliersLoadedMsg:
		a.loading--
		a.refreshProductPage()
		a.refreshSupplierPage()
		return a, nil

	case cartLoadedMsg:
		a.loading--
		a.cartPage.UpdateContent(a.cart.Items())
		a.refreshItemPage()
		if msg.err != nil && a.page == ui.PageCart {
			a.cartPage.SetStatus(msg.err.Error(), true)
		}
		return a, nil

	case loginResultMsg:
		a.loading--
		if msg.err != nil {
			a.loginPage.SetStatus(msg.err.Error(), true)
			return a, nil
		}
		a.loginPage.Reset()
		a.navigate(ui.Next(a.page, ui.EvLoginSuccess, true))
		a.loading++
		return a, a.loadCartCmd()

	case registerResultMsg:
		a.loading--
		if msg.err != nil {
			a.accountPage.SetStatus(msg.err.Error(), true)
			return a, nil
		}
		a.accountPage.SetStatus("Account created successfully!", false)
		return a, nil

	case cartAddResultMsg:
		a.loading--
		if msg.err != nil {
			a.itemPage.SetStatus(msg.err.Error(), true)
			return a, nil
		}
		a.itemPage.ResetQuantity(msg.productID)
		a.itemPage.SetStatus("Product added to cart successfully!", false)
		a.refreshItemPage()
		return a, nil

	case cartRemoveResultMsg:
		a.loading--
		a.cartPage.UpdateContent(a.cart.Items())
		a.refreshItemPage()
		if msg.err != nil {
			a.cartPage.SetStatus(msg.err.Error(), true)
		} else {
			a.cartPage.SetStatus("Product removed from cart successfully!", false)
		}
		return a, nil

	case productAddResultMsg:
		a.loading--
		a.refreshProductPage()
		a.refreshItemPage()
		if msg.err != nil {
			a.productPage.SetStatus(msg.err.Error(), true)
		} else {
			a.productPage.ClearForm()
			a.productPage.SetStatus("Product added successfully!", false)
		}
		return a, nil

	case productSaveResultMsg:
		a.loading--
		a.refreshProductPage()
		a.refreshItemPage()
		if msg.err != nil {
			a.productPage.SetStatus(msg.err.Error(), true)
		} else {
			a.productPage.SetStatus("Product updated successfully!", false)
		}
		return a, nil

	case productDeleteResultMsg:
		a.loading--
		a.refreshProductPage()
		a.refreshItemPage()
		if msg.err != nil {
			a.productPage.SetStatus(msg.err.Error(), true)
		} else {
			a.productPage.SetStatus("Product deleted successfully!", false)
		}
		return a, nil

	case supplierAddResultMsg:
		a.loading--
		a.refreshSupplierPage()
		a.refreshProductPage()
		if msg.err != nil {
			a.supplierPage.SetStatus(msg.err.Error(), true)
		} else {
			a.supplierPage.ClearForm()
			a.supplierPage.SetStatus("Supplier added successfully!", false)
		}
		return a, nil

	case supplierSaveResultMsg:
		a.loading--
		a.refreshSupplierPage()
		a.refreshProductPage()
		if msg.err != nil {
			a.supplierPage.SetStatus(msg.err.Error(), true)
		} else {
			a.supplierPage.SetStatus("Supplier updated successfully!", false)
		}
		return a, nil

	case supplierDeleteResultMsg:
		a.loading--
		a.refreshSupplierPage()
		a.refreshProductPage()
		if msg.err != nil {
			a.supplierPage.SetStatus(msg.err.Error(), true)
		} else {
			a.supplierPage.SetStatus("Supplier deleted successfully!", false)
		}
		return a, nil
	}

	return a.updatePage(msg)
}

// handleGlobalKey processes navigation and quit keys. Returns handled=false
// for keys the active page should see instead.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	authenticated := a.gate.Authenticated()

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit, true
	case "f1":
		a.navigate(ui.Next(a.page, ui.EvHome, authenticated))
		return a, nil, true
	case "f2":
		a.navigate(ui.Next(a.page, ui.EvCreateAccount, authenticated))
		return a, nil, true
	case "f3":
		a.navigate(ui.Next(a.page, ui.EvLogin, authenticated))
		return a, nil, true
	case "f4":
		a.navigate(ui.Next(a.page, ui.EvProducts, authenticated))
		return a, nil, true
	case "f5":
		if next := ui.Next(a.page, ui.EvCart, authenticated); next != a.page {
			a.navigate(next)
			a.loading++
			return a, a.loadCartCmd(), true
		}
		return a, nil, true
	case "f6":
		a.navigate(ui.Next(a.page, ui.EvProductManager, authenticated))
		return a, nil, true
	case "f7":
		a.navigate(ui.Next(a.page, ui.EvSupplier, authenticated))
		return a, nil, true
	case "f9":
		if authenticated {
			a.gate.Logout()
			a.navigate(ui.Next(a.page, ui.EvLogout, false))
		}
		return a, nil, true
	}
	return a, nil, false
}

// navigate switches the active page and refreshes its content from the
// stores.
func (a *App) navigate(page ui.Page) {
	if page == a.page {
		return
	}
	logging.UI("navigate %s -> %s", a.page, page)
	a.page = page

	switch page {
	case ui.PageLogin:
		a.loginPage.Reset()
	case ui.PageCreateAccount:
		a.accountPage.Reset()
	case ui.PageProducts:
		a.refreshItemPage()
	case ui.PageCart:
		a.cartPage.UpdateContent(a.cart.Items())
	case ui.PageProductManager:
		a.refreshProductPage()
	case ui.PageSupplier:
		a.refreshSupplierPage()
	}
}

func (a *App) refreshItemPage() {
	products := a.store.Products()
	counts := make(map[int]int)
	for _, p := range products {
		if n := a.cart.Quantity(p.ID); n > 0 {
			counts[p.ID] = n
		}
	}
	a.itemPage.UpdateContent(products, counts)
}

func (a *App) refreshProductPage() {
	a.productPage.UpdateContent(a.store.Products(), a.store.Suppliers())
}

func (a *App) refreshSupplierPage() {
	a.supplierPage.UpdateContent(a.store.Suppliers())
}

func (a *App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case ui.PageLogin:
		a.loginPage, cmd = a.loginPage.Update(msg)
	case ui.PageCreateAccount:
		a.accountPage, cmd = a.accountPage.Update(msg)
	case ui.PageProducts:
		a.itemPage, cmd = a.itemPage.Update(msg)
	case ui.PageCart:
		a.cartPage, cmd = a.cartPage.Update(msg)
	case ui.PageProductManager:
		a.productPage, cmd = a.productPage.Update(msg)
	case ui.PageSupplier:
		a.supplierPage, cmd = a.supplierPage.Update(msg)
	}
	return a, cmd
}

// navEntry is one item in the header bar.
type navEntry struct {
	key   string
	label string
	page  ui.Page
	gated bool // hidden without a session
	anon  bool // hidden with a session
}

var navEntries = []navEntry{
	{key: "F1", label: "Home", page: ui.PageLanding},
	{key: "F2", label: "Create Account", page: ui.PageCreateAccount, anon: true},
	{key: "F3", label: "Login", page: ui.PageLogin, anon: true},
	{key: "F4", label: "Products", page: ui.PageProducts, gated: true},
	{key: "F5", label: "Cart", page: ui.PageCart, gated: true},
	{key: "F6", label: "Manage Products", page: ui.PageProductManager, gated: true},
	{key: "F7", label: "Suppliers", page: ui.PageSupplier, gated: true},
}

func (a *App) navBar() string {
	authenticated := a.gate.Authenticated()

	var items []string
	for _, e := range navEntries {
		if e.gated && !authenticated {
			continue
		}
		if e.anon && authenticated {
			continue
		}
		label := e.key + " " + e.label
		if a.page == e.page {
			items = append(items, a.styles.NavHere.Render(label))
		} else {
			items = append(items, a.styles.NavItem.Render(label))
		}
	}
	if authenticated {
		items = append(items, a.styles.NavItem.Render("F9 Logout"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (a *App) landingView() string {
	var sb strings.Builder
	sb.WriteString(a.styles.Title.Render("Bem-vindo à Lojinha") + "\n\n")
	sb.WriteString("Browse the catalog, fill your cart, and manage products\n")
	sb.WriteString("and suppliers from your terminal.\n\n")
	if a.gate.Authenticated() {
		sb.WriteString(a.styles.Muted.Render("Press F4 to see the products."))
	} else {
		sb.WriteString(a.styles.Muted.Render("Press F3 to log in, or F2 to create an account."))
	}
	return a.styles.Card.Render(sb.String())
}

// View renders the header, the active page, and the footer.
func (a *App) View() string {
	var sb strings.Builder

	header := a.styles.Header.Render("lojinha")
	sb.WriteString(header + " " + a.navBar() + "\n\n")

	var body string
	switch a.page {
	case ui.PageLanding:
		body = a.landingView()
	case ui.PageCreateAccount:
		body = a.accountPage.View()
	case ui.PageLogin:
		body = a.loginPage.View()
	case ui.PageProducts:
		body = a.itemPage.View()
	case ui.PageCart:
		body = a.cartPage.View()
	case ui.PageProductManager:
		body = a.productPage.View()
	case ui.PageSupplier:
		body = a.supplierPage.View()
	}
	sb.WriteString(a.styles.Content.Render(body) + "\n")

	footer := "[Ctrl+C] Quit"
	if a.loading > 0 {
		footer = a.spinner.View() + " working  " + footer
	}
	sb.WriteString(a.styles.Footer.Render(footer))
	return sb.String()
}
