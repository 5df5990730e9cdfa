package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/config"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/access"
	"github.com/BruksfildServices01/clinic-ledger/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-ledger/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/report"
	ucAnalytics "github.com/BruksfildServices01/clinic-ledger/internal/usecase/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/usecase/ledger"
	ucRecord "github.com/BruksfildServices01/clinic-ledger/internal/usecase/record"
	ucReport "github.com/BruksfildServices01/clinic-ledger/internal/usecase/report"
	"github.com/BruksfildServices01/clinic-ledger/internal/validators"
)

// Deps are the process-wide collaborators built in main. Archive may be nil.
type Deps struct {
	Audit   *audit.Dispatcher
	Archive ucReport.Archive
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	if err := validators.RegisterGin(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	recordRepo := infraRepo.NewRecordGormRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	inventoryRepo := infraRepo.NewInventoryGormRepository(db)

	generator := ledger.NewGenerator()

	// ======================================================
	// 🧠 USE CASES / RECORDS
	// ======================================================
	createRecordUC := ucRecord.NewCreateRecord(recordRepo, deps.Audit)
	updateRecordUC := ucRecord.NewUpdateRecord(recordRepo, generator, deps.Audit)
	completeRecordUC := ucRecord.NewCompleteRecord(recordRepo, generator, deps.Audit)
	deleteRecordUC := ucRecord.NewDeleteRecord(recordRepo, deps.Audit)
	listRecordsUC := ucRecord.NewListRecords(recordRepo)
	getRecordUC := ucRecord.NewGetRecord(recordRepo)
	listCompletionsUC := ucRecord.NewListRecordCompletions(recordRepo)

	// ======================================================
	// 🧠 USE CASES / ANALYTICS / REPORTS
	// ======================================================
	monthlyUC := ucAnalytics.NewGetMonthlyAnalytics(analyticsRepo)
	incomeUC := ucAnalytics.NewGetIncomeAnalytics(analyticsRepo)
	expenseUC := ucAnalytics.NewGetExpenseAnalytics(analyticsRepo)
	clientsUC := ucAnalytics.NewGetClientAnalytics(analyticsRepo)
	workloadUC := ucAnalytics.NewGetEmployeeWorkload(analyticsRepo)

	buildReportUC := ucReport.NewBuildReport(analyticsRepo, cfg.ReportMaxDays)
	exportReportUC := ucReport.NewExportReport(buildReportUC, report.Renderers(), deps.Archive)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db, deps.Audit)

	recordHandler := handlers.NewRecordHandler(
		createRecordUC,
		updateRecordUC,
		completeRecordUC,
		deleteRecordUC,
		listRecordsUC,
		getRecordUC,
		listCompletionsUC,
	)

	analyticsHandler := handlers.NewAnalyticsHandler(
		monthlyUC,
		incomeUC,
		expenseUC,
		clientsUC,
		workloadUC,
	)
	reportHandler := handlers.NewReportHandler(exportReportUC)

	catalogHandler := handlers.NewCatalogHandler(catalogRepo, deps.Audit)
	ledgerHandler := handlers.NewLedgerHandler(db, deps.Audit)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo)
	pushHandler := handlers.NewPushHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	can := middleware.RequireCapability
	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMinute)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", loginLimiter.RateLimit(), authHandler.Register)
		api.POST("/auth/login", loginLimiter.RateLimit(), authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, db))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", can(access.CanManageUsers), userHandler.List)
			secured.POST("/users", can(access.CanManageUsers), userHandler.Create)
			secured.PATCH("/users/:id/role", can(access.CanManageUsers), userHandler.UpdateRole)

			// ------------------------------
			// RECORDS
			// ------------------------------
			secured.POST("/records", can(access.CanCreateRecords), recordHandler.Create)
			secured.GET("/records", can(access.CanViewRecords), recordHandler.List)
			secured.GET("/records/:id", can(access.CanViewRecords), recordHandler.Get)
			secured.PATCH("/records/:id", can(access.CanEditRecords), recordHandler.Update)
			secured.DELETE("/records/:id", can(access.CanDeleteRecords), recordHandler.Delete)
			secured.POST("/records/:id/complete", can(access.CanCompleteRecords), recordHandler.Complete)
			secured.GET("/records/:id/completions", can(access.CanViewRecords), recordHandler.Completions)

			// ------------------------------
			// ANALYTICS / REPORTS
			// ------------------------------
			secured.GET("/analytics/month", can(access.CanViewAnalytics), analyticsHandler.Monthly)
			secured.GET("/analytics/income", can(access.CanViewAnalytics), analyticsHandler.Income)
			secured.GET("/analytics/expense", can(access.CanViewAnalytics), analyticsHandler.Expense)
			secured.GET("/analytics/clients", can(access.CanViewAnalytics), analyticsHandler.Clients)
			secured.GET("/analytics/employees/:id", analyticsHandler.Employee)

			secured.GET("/reports/excel", can(access.CanExportReports), reportHandler.Download("excel"))
			secured.GET("/reports/word", can(access.CanExportReports), reportHandler.Download("word"))

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/clients", can(access.CanViewRecords), catalogHandler.ListClients)
			secured.POST("/clients", can(access.CanManageCatalog), catalogHandler.CreateClient)
			secured.PATCH("/clients/:id", can(access.CanManageCatalog), catalogHandler.UpdateClient)
			secured.DELETE("/clients/:id", can(access.CanManageCatalog), catalogHandler.DeleteClient)

			secured.GET("/services", can(access.CanViewRecords), catalogHandler.ListServices)
			secured.POST("/services", can(access.CanManageCatalog), catalogHandler.CreateService)
			secured.PATCH("/services/:id", can(access.CanManageCatalog), catalogHandler.UpdateService)
			secured.DELETE("/services/:id", can(access.CanManageCatalog), catalogHandler.DeleteService)

			// ------------------------------
			// LEDGER
			// ------------------------------
			secured.GET("/incomes", can(access.CanViewAnalytics), ledgerHandler.ListIncomes)
			secured.POST("/incomes", can(access.CanManageLedger), ledgerHandler.CreateIncome)
			secured.DELETE("/incomes/:id", can(access.CanManageLedger), ledgerHandler.DeleteIncome)

			secured.GET("/expenses", can(access.CanManageExpenses), ledgerHandler.ListExpenses)
			secured.POST("/expenses", can(access.CanManageExpenses), ledgerHandler.CreateExpense)
			secured.DELETE("/expenses/:id", can(access.CanManageExpenses), ledgerHandler.DeleteExpense)

			// ------------------------------
			// INVENTORY
			// ------------------------------
			secured.GET("/inventory", can(access.CanManageInventory), inventoryHandler.List)
			secured.POST("/inventory", can(access.CanManageInventory), inventoryHandler.Create)
			secured.POST("/inventory/:id/adjust", can(access.CanManageInventory), inventoryHandler.Adjust)
			secured.POST("/inventory/:id/purchase", can(access.CanManageInventory), inventoryHandler.Purchase)
			secured.GET("/inventory/:id/history", can(access.CanManageInventory), inventoryHandler.History)

			// ------------------------------
			// PUSH / AUDIT
			// ------------------------------
			secured.GET("/push-subscriptions", pushHandler.List)
			secured.POST("/push-subscriptions", pushHandler.Subscribe)
			secured.DELETE("/push-subscriptions", pushHandler.Unsubscribe)

			secured.GET("/audit-logs", can(access.CanManageUsers), auditLogsHandler.List)
		}
	}
}
