package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-ledger/internal/handler"
	"go-pos-ledger/internal/middleware"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/internal/service"
	"go-pos-ledger/internal/ws"
	"go-pos-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Product{}, &model.Customer{}, &model.Sale{}, &model.Payment{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and manager user
	seedPrivilegesRolesAndManager(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	ledgerService := service.NewLedgerService(productRepo, customerRepo, saleRepo, paymentRepo, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, customerRepo, saleRepo, db, wsHub)
	debtService := service.NewDebtService(customerRepo, saleRepo, paymentRepo)
	reportService := service.NewReportService(saleRepo, productRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	debtHandler := handler.NewDebtHandler(debtService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Ledger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetCatalogStats)

	// Product Routes (with privilege checks)
	protected.Get("/products", middleware.RequirePrivilege("product:view"), catalogHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)

	// Customer Routes
	protected.Get("/customers", middleware.RequirePrivilege("debt:view"), catalogHandler.GetCustomers)
	protected.Post("/customers", middleware.RequirePrivilege("sale:create"), catalogHandler.CreateCustomer)

	// Sale Routes (with privilege checks)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), ledgerHandler.RecordSale)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:delete"), ledgerHandler.DeleteSale)

	// Payment Routes (debt collection)
	protected.Post("/payments/item", middleware.RequirePrivilege("debt:pay"), ledgerHandler.RecordItemPayment)
	protected.Post("/payments/customer", middleware.RequirePrivilege("debt:pay"), ledgerHandler.RecordCustomerPayment)

	// Debt Routes
	protected.Get("/debts/customers", middleware.RequirePrivilege("debt:view"), debtHandler.GetCustomersWithDebt)
	protected.Get("/debts/customers/:id/sales", middleware.RequirePrivilege("debt:view"), debtHandler.GetOutstandingSales)
	protected.Get("/debts/customers/:id/payments", middleware.RequirePrivilege("debt:view"), debtHandler.GetPayments)

	// Report Routes (handler scopes salespersons to their own sales)
	protected.Get("/reports/daily", reportHandler.GetDailySales)

	// User Management Routes (with privilege checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/verify", middleware.RequirePrivilege("user:update"), userHandler.VerifyUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndManager creates default privileges, roles, and the
// first manager account if they don't exist
func seedPrivilegesRolesAndManager(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MANAGER gets ALL privileges
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		db.Model(&managerRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ MANAGER role assigned all privileges")
	}

	// SALESPERSON only records sales and collects debts
	salesRole, err := roleRepo.FindByCode(model.RoleSalesperson)
	if err == nil && len(salesRole.Privileges) == 0 {
		salesPrivileges, err := privilegeRepo.FindByCodes(model.SalespersonPrivileges)
		if err != nil {
			log.Printf("Warning: Failed to load salesperson privileges: %v", err)
		} else {
			db.Model(&salesRole).Association("Privileges").Replace(salesPrivileges)
			log.Println("✅ SALESPERSON role assigned sales privileges")
		}
	}

	// 4. Create default manager user with MANAGER role
	_, err = userRepo.FindByEmail("manager@example.com")
	if err != nil {
		managerRole, _ := roleRepo.FindByCode(model.RoleManager)

		manager := &model.User{
			Email:       "manager@example.com",
			FullName:    "Store Manager",
			PhoneNumber: "",
			RoleID:      &managerRole.ID,
			IsActive:    true,
			Privileges:  managerRole.Privileges,
		}
		manager.CreatedBy = "system"
		manager.UpdatedBy = "system"

		if err := manager.SetPassword("manager123"); err != nil {
			log.Printf("Warning: Failed to hash manager password: %v", err)
			return
		}

		if err := userRepo.Create(manager); err != nil {
			log.Printf("Warning: Failed to create manager user: %v", err)
		} else {
			log.Println("✅ Manager user created: manager@example.com / manager123 (MANAGER)")
		}
	}
}
