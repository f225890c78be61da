package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	appnewsletter "github.com/jhoicas/Tienda-api/internal/application/newsletter"
	apporder "github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/Tienda-api/internal/infrastructure/excel"
	inframailer "github.com/jhoicas/Tienda-api/internal/infrastructure/mailer"
	infrapayment "github.com/jhoicas/Tienda-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)
	testimonialRepo := postgres.NewTestimonialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := inframailer.NewSMTPMailer(cfg.SMTP)
	gateway := infrapayment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	exporter := infraexcel.NewExcelizeExporter()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	resetUC := auth.NewResetPasswordUseCase(userRepo, mailer, log, cfg.App.BaseURL)
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	cartUC := appcart.NewCartUseCase(userRepo, productRepo)
	orderUC := apporder.NewOrderUseCase(txRunner, orderRepo, userRepo, gateway, log)
	receiptUC := apporder.NewReceiptUseCase(orderRepo, userRepo, receiptGen)
	testimonialUC := usecase.NewTestimonialUseCase(testimonialRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	exportUC := usecase.NewExportUseCase(orderRepo, newsletterRepo, exporter)

	// Suscripción pública: 5 intentos por IP por minuto.
	newsletterLimiter := ratelimit.New(5, time.Minute)
	newsletterUC := appnewsletter.NewNewsletterUseCase(newsletterRepo, newsletterLimiter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imágenes de producto subidas por admin.
	app.Static("/uploads/products", cfg.Uploads.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ResetUC:       resetUC,
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		CartUC:        cartUC,
		OrderUC:       orderUC,
		ReceiptUC:     receiptUC,
		NewsletterUC:  newsletterUC,
		TestimonialUC: testimonialUC,
		UserUC:        userUC,
		ExportUC:      exportUC,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		UploadsDir:    cfg.Uploads.Dir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
