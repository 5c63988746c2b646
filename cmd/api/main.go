package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"agriko-backend/internal/handler"
	"agriko-backend/internal/middleware"
	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
	"agriko-backend/internal/service"
	"agriko-backend/internal/ws"
	"agriko-backend/pkg/database"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool for production rollouts)
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Office{}, &model.Product{}, &model.ProductMaterial{}, &model.RawMaterial{},
		&model.OfficeProduct{}, &model.FinalProduct{},
		&model.TransferTransaction{},
		&model.Customer{}, &model.OrderTransaction{}, &model.OrderedProduct{},
		&model.ChangeLog{}, &model.ErrorLog{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	officeRepo := repository.NewOfficeRepo(db)
	productRepo := repository.NewProductRepo(db)
	rawMaterialRepo := repository.NewRawMaterialRepo(db)
	stockRepo := repository.NewStockRepo(db)
	transferRepo := repository.NewTransferRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, officeRepo)
	catalogService := service.NewCatalogService(productRepo, rawMaterialRepo, officeRepo)
	stockService := service.NewStockService(stockRepo, rawMaterialRepo, productRepo, auditRepo, db, wsHub)
	productionService := service.NewProductionService(productRepo, rawMaterialRepo, stockRepo, auditRepo, db, wsHub)
	transferService := service.NewTransferService(transferRepo, stockRepo, productRepo, officeRepo, auditRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, officeRepo, auditRepo, db, wsHub)
	reportService := service.NewReportService(orderRepo)
	dashboardService := service.NewDashboardService(productRepo, rawMaterialRepo, stockRepo, transferRepo, orderRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	stockHandler := handler.NewStockHandler(stockService, productionService)
	transferHandler := handler.NewTransferHandler(transferService)
	orderHandler := handler.NewOrderHandler(orderService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Agriko Backend v1.0",
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
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashboardHandler.GetStats)
	protected.Get("/dashboard/sales-chart", middleware.RequirePrivilege("dashboard:view"), dashboardHandler.GetSalesChart)

	// Office Routes
	protected.Get("/offices", middleware.RequirePrivilege("office:view"), catalogHandler.GetOffices)
	protected.Get("/offices/:id", middleware.RequirePrivilege("office:view"), catalogHandler.GetOffice)
	protected.Post("/offices", middleware.RequirePrivilege("office:manage"), catalogHandler.CreateOffice)
	protected.Put("/offices/:id", middleware.RequirePrivilege("office:manage"), catalogHandler.UpdateOffice)
	protected.Delete("/offices/:id", middleware.RequirePrivilege("office:manage"), catalogHandler.DeleteOffice)
	protected.Get("/offices/:id/stock", middleware.RequirePrivilege("stock:view"), stockHandler.GetOfficeStock)

	// Product Routes
	protected.Get("/products", middleware.RequirePrivilege("product:view"), catalogHandler.GetProducts)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)

	// Raw Material Routes
	protected.Get("/raw-materials", middleware.RequirePrivilege("raw_material:view"), catalogHandler.GetRawMaterials)
	protected.Post("/raw-materials", middleware.RequirePrivilege("raw_material:manage"), catalogHandler.CreateRawMaterial)
	protected.Put("/raw-materials/:id", middleware.RequirePrivilege("raw_material:manage"), catalogHandler.UpdateRawMaterial)
	protected.Delete("/raw-materials/:id", middleware.RequirePrivilege("raw_material:manage"), catalogHandler.DeleteRawMaterial)

	// Stock & Production Routes
	protected.Get("/stock/final-products", middleware.RequirePrivilege("stock:view"), stockHandler.GetFinalStock)
	protected.Get("/stock/raw-materials", middleware.RequirePrivilege("stock:view"), stockHandler.GetRawMaterialStock)
	protected.Post("/stock/adjust", middleware.RequirePrivilege("stock:adjust"), stockHandler.AdjustStock)
	protected.Post("/production", middleware.RequirePrivilege("production:create"), stockHandler.AddProduction)

	// Transfer Routes
	protected.Get("/transfers", middleware.RequirePrivilege("transfer:view"), transferHandler.GetTransfers)
	protected.Get("/transfers/:id", middleware.RequirePrivilege("transfer:view"), transferHandler.GetTransfer)
	protected.Post("/transfers", middleware.RequirePrivilege("transfer:create"), transferHandler.CreateTransfer)
	protected.Post("/transfers/:id/receive", middleware.RequirePrivilege("transfer:receive"), transferHandler.ReceiveTransfer)

	// Order / POS Routes
	protected.Get("/customers", middleware.RequirePrivilege("order:create"), orderHandler.SearchCustomers)
	protected.Post("/orders", middleware.RequirePrivilege("order:create"), orderHandler.Checkout)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)
	protected.Get("/orders/:id/receipt", middleware.RequireAnyPrivilege("order:view", "order:create"), orderHandler.GetReceipt)
	protected.Post("/ordered-products/:id/cancel", middleware.RequirePrivilege("order:cancel"), orderHandler.CancelOrderedProduct)

	// Report Routes
	protected.Get("/reports/sales", middleware.RequirePrivilege("report:view"), reportHandler.GetSalesSummary)
	protected.Get("/reports/sales/export", middleware.RequirePrivilege("report:export"), reportHandler.ExportSalesSummary)

	// Audit Routes
	protected.Get("/audit/change-logs", middleware.RequirePrivilege("audit:view"), auditHandler.GetChangeLogs)

	// User Management Routes
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role & Privilege Routes
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

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

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
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

	// SUPER_ADMIN gets ALL privileges
	superRole, err := roleRepo.FindByCode(model.RoleSuperAdmin)
	if err == nil && len(superRole.Privileges) == 0 {
		db.Model(&superRole).Association("Privileges").Replace(allPrivileges)
		log.Println("SUPER_ADMIN role assigned all privileges")
	}

	// MANAGER gets everything except user and office management
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		excluded := make(map[string]bool, len(model.ManagerExcludedPrivileges))
		for _, code := range model.ManagerExcludedPrivileges {
			excluded[code] = true
		}
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if !excluded[p.Code] {
				managerPrivileges = append(managerPrivileges, p)
			}
		}
		db.Model(&managerRole).Association("Privileges").Replace(managerPrivileges)
		log.Println("MANAGER role assigned limited privileges")
	}

	// CASHIER gets the point-of-sale subset only
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, err := privilegeRepo.FindByCodes(model.CashierPrivileges)
		if err == nil {
			db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
			log.Println("CASHIER role assigned POS privileges")
		}
	}

	// 4. Create default admin user with SUPER_ADMIN role
	_, err = userRepo.FindByEmail("admin@agriko.local")
	if err != nil {
		superRole, _ := roleRepo.FindByCode(model.RoleSuperAdmin)

		admin := &model.User{
			Email:       "admin@agriko.local",
			FullName:    "Super Administrator",
			PhoneNumber: "",
			RoleID:      &superRole.ID,
			IsActive:    true,
			Privileges:  superRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@agriko.local / admin123 (SUPER_ADMIN)")
		}
	}
}
