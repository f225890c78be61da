package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/newsletter"
	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ResetUC       *auth.ResetPasswordUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	CartUC        *cart.CartUseCase
	OrderUC       *order.OrderUseCase
	ReceiptUC     *order.ReceiptUseCase
	NewsletterUC  *newsletter.NewsletterUseCase
	TestimonialUC *usecase.TestimonialUseCase
	UserUC        *usecase.UserUseCase
	ExportUC      *usecase.ExportUseCase
	JWTSecret     string
	WebhookSecret string
	UploadsDir    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.ResetUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset/request", authHandler.RequestReset)
	authGroup.Post("/reset/confirm", authHandler.ConfirmReset)

	// Catálogo (lectura pública)
	productHandler := NewProductHandler(deps.ProductUC, deps.UploadsDir)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	// Testimonios (vitrina pública: solo aprobados)
	testimonialHandler := NewTestimonialHandler(deps.TestimonialUC)
	api.Get("/testimonials", testimonialHandler.ListPublic)

	// Newsletter (público, CSRF doble-envío + rate limit por IP)
	newsletterHandler := NewNewsletterHandler(deps.NewsletterUC)
	api.Get("/newsletter/token", newsletterHandler.Token)
	api.Post("/newsletter/subscribe", newsletterHandler.Subscribe)

	// Webhook de pagos (secreto compartido, sin JWT)
	webhookHandler := NewWebhookHandler(deps.OrderUC, deps.WebhookSecret)
	api.Post("/webhooks/payment", webhookHandler.Payment)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/me", userHandler.Me)

	// Carrito (protegido)
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productID", cartHandler.SetItem)
	cartGroup.Delete("/items/:productID", cartHandler.RemoveItem)

	// Órdenes del comprador (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders := protected.Group("/orders")
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/payment", orderHandler.RetryPayment)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Superficie administrativa (rol admin)
	admin := protected.Group("/admin", RequireRole("admin"))

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Post("/products/:id/image", productHandler.UploadImage)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Post("/categories", categoryHandler.Create)
	admin.Delete("/categories/:id", categoryHandler.Delete)

	adminOrderHandler := NewAdminOrderHandler(deps.OrderUC)
	admin.Get("/orders", adminOrderHandler.List)
	admin.Post("/orders/:id/confirm", adminOrderHandler.Confirm)
	admin.Post("/orders/:id/ship", adminOrderHandler.Ship)
	admin.Post("/orders/:id/deliver", adminOrderHandler.Deliver)
	admin.Post("/orders/:id/cancel", adminOrderHandler.Cancel)

	admin.Get("/newsletter", newsletterHandler.List)
	admin.Put("/newsletter/:id/active", newsletterHandler.SetActive)
	admin.Delete("/newsletter/:id", newsletterHandler.Delete)

	admin.Get("/testimonials", testimonialHandler.ListAll)
	admin.Post("/testimonials", testimonialHandler.Create)
	admin.Put("/testimonials/:id", testimonialHandler.Update)
	admin.Delete("/testimonials/:id", testimonialHandler.Delete)

	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)

	exportHandler := NewExportHandler(deps.ExportUC)
	admin.Get("/exports/orders", exportHandler.Orders)
	admin.Get("/exports/subscribers", exportHandler.Subscribers)
}
