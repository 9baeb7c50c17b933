package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercatus-labs/mercatus-backend/api/controllers"
	poscontrollers "github.com/mercatus-labs/mercatus-backend/api/controllers/pos"
	"github.com/mercatus-labs/mercatus-backend/api/middleware"
	cartsvc "github.com/mercatus-labs/mercatus-backend/internal/cart"
	categorysvc "github.com/mercatus-labs/mercatus-backend/internal/categories"
	checkoutsvc "github.com/mercatus-labs/mercatus-backend/internal/checkout"
	customersvc "github.com/mercatus-labs/mercatus-backend/internal/customers"
	expensesvc "github.com/mercatus-labs/mercatus-backend/internal/expenses"
	invoicesvc "github.com/mercatus-labs/mercatus-backend/internal/invoices"
	productsvc "github.com/mercatus-labs/mercatus-backend/internal/products"
	storesvc "github.com/mercatus-labs/mercatus-backend/internal/stores"
	suppliersvc "github.com/mercatus-labs/mercatus-backend/internal/suppliers"
	"github.com/mercatus-labs/mercatus-backend/pkg/config"
	"github.com/mercatus-labs/mercatus-backend/pkg/db"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
	"github.com/mercatus-labs/mercatus-backend/pkg/metrics"
	pkgredis "github.com/mercatus-labs/mercatus-backend/pkg/redis"
)

// Services carries everything the router needs to wire its handlers.
type Services struct {
	Stores     storesvc.Service
	Products   productsvc.Service
	Categories categorysvc.Service
	Suppliers  suppliersvc.Service
	Customers  customersvc.Service
	Invoices   invoicesvc.Service
	Expenses   expensesvc.Service
	Cart       cartsvc.Service
	Checkout   checkoutsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.StoreContext(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.Get("/{productID}", controllers.GetProduct(svcs.Products, logg))
			r.Patch("/{productID}", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(svcs.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(svcs.Categories, logg))
			r.Post("/", controllers.CreateCategory(svcs.Categories, logg))
			r.Patch("/{categoryID}", controllers.UpdateCategory(svcs.Categories, logg))
			r.Delete("/{categoryID}", controllers.DeleteCategory(svcs.Categories, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(svcs.Suppliers, logg))
			r.Post("/", controllers.CreateSupplier(svcs.Suppliers, logg))
			r.Patch("/{supplierID}", controllers.UpdateSupplier(svcs.Suppliers, logg))
			r.Delete("/{supplierID}", controllers.DeleteSupplier(svcs.Suppliers, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/{customerID}", controllers.GetCustomer(svcs.Customers, logg))
			r.Patch("/{customerID}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.Delete("/{customerID}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.ListInvoices(svcs.Invoices, logg))
			r.Get("/{invoiceID}", controllers.GetInvoice(svcs.Invoices, logg))
			r.Patch("/{invoiceID}", controllers.UpdateInvoice(svcs.Invoices, logg))
			r.Delete("/{invoiceID}", controllers.DeleteInvoice(svcs.Invoices, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ListExpenses(svcs.Expenses, logg))
			r.Post("/", controllers.CreateExpense(svcs.Expenses, logg))
			r.Patch("/{expenseID}", controllers.UpdateExpense(svcs.Expenses, logg))
			r.Delete("/{expenseID}", controllers.DeleteExpense(svcs.Expenses, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(svcs.Stores, logg))
			r.Patch("/", controllers.UpdateSettings(svcs.Stores, logg))
		})

		r.Route("/pos", func(r chi.Router) {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", poscontrollers.CartGet(svcs.Cart, logg))
				r.Delete("/", poscontrollers.CartClear(svcs.Cart, logg))
				r.Post("/items", poscontrollers.CartAddItem(svcs.Cart, logg))
				r.Post("/items/{productID}/increase", poscontrollers.CartIncreaseItem(svcs.Cart, logg))
				r.Post("/items/{productID}/decrease", poscontrollers.CartDecreaseItem(svcs.Cart, logg))
				r.Delete("/items/{productID}", poscontrollers.CartRemoveItem(svcs.Cart, logg))
				r.Put("/discount", poscontrollers.CartSetDiscount(svcs.Cart, logg))
				r.Put("/customer", poscontrollers.CartSetCustomer(svcs.Cart, logg))
				r.Put("/payment-method", poscontrollers.CartSetPaymentMethod(svcs.Cart, logg))
			})
			r.Post("/checkout", poscontrollers.Checkout(svcs.Checkout, logg))
		})
	})

	return r
}
