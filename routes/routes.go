package routes

import (
	"github.com/gofiber/fiber/v2"

	"invoicer-backend/controllers"
	"invoicer-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Public utility endpoints
	api.Post("/ad-click", controllers.TrackAdClick)
	api.Get("/exchange-rate", controllers.ExchangeRate)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)
	protected.Delete("/client/:id", controllers.DeleteClient)

	// Business profiles
	protected.Post("/business", controllers.CreateBusinessProfile)
	protected.Get("/businesses", controllers.GetBusinessProfiles)
	protected.Get("/business/:id", controllers.GetBusinessProfile)
	protected.Put("/business/:id", controllers.UpdateBusinessProfile)
	protected.Delete("/business/:id", controllers.DeleteBusinessProfile)

	// Invoices
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoice/:id", controllers.UpdateInvoice)
	protected.Delete("/invoice/:id", controllers.DeleteInvoice)

	// Rendering and delivery
	protected.Post("/invoices/preview", controllers.PreviewInvoice)
	protected.Get("/invoices/:id/pdf", controllers.GeneratePDF)
	protected.Post("/invoices/:id/email", controllers.EmailInvoice)
	protected.Get("/pdf-status", controllers.PDFStatus)

	// Dashboard
	protected.Get("/dashboard", controllers.Dashboard)
}
