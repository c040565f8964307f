package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	"github.com/UrbanAidServices/household-marketplace/internal/config"
	"github.com/UrbanAidServices/household-marketplace/internal/handlers"
	infraRepo "github.com/UrbanAidServices/household-marketplace/internal/infra/repository"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
	"github.com/UrbanAidServices/household-marketplace/internal/sessioncache"
	"github.com/UrbanAidServices/household-marketplace/internal/storage"
	ucListing "github.com/UrbanAidServices/household-marketplace/internal/usecase/listing"
	ucRequest "github.com/UrbanAidServices/household-marketplace/internal/usecase/request"
	ucVerification "github.com/UrbanAidServices/household-marketplace/internal/usecase/verification"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	sessions *sessioncache.Cache,
	uploader *storage.Uploader,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	requestRepo := infraRepo.NewRequestGormRepository(db)
	verificationRepo := infraRepo.NewVerificationGormRepository(db)

	// ======================================================
	// USE CASES — REQUEST LIFECYCLE
	// ======================================================
	createRequestUC := ucRequest.NewCreateRequest(requestRepo, auditDispatcher)
	acceptRequestUC := ucRequest.NewAcceptRequest(requestRepo, auditDispatcher)
	rejectRequestUC := ucRequest.NewRejectRequest(requestRepo, auditDispatcher)
	updatePriceUC := ucRequest.NewUpdateProposedPrice(requestRepo, auditDispatcher)
	fileReviewUC := ucRequest.NewFileReview(requestRepo, auditDispatcher)
	processPaymentUC := ucRequest.NewProcessPayment(requestRepo, auditDispatcher)
	reassignUC := ucRequest.NewReassignProfessional(requestRepo, auditDispatcher)
	historyUC := ucRequest.NewListHistory(requestRepo)

	// ======================================================
	// USE CASES — LISTING
	// ======================================================
	browseUC := ucListing.NewBrowseProfessionals(requestRepo)
	chartsUC := ucListing.NewChartData(requestRepo)

	// ======================================================
	// USE CASES — VERIFICATION / ACCESS
	// ======================================================
	approveUC := ucVerification.NewApproveProfessional(verificationRepo, auditDispatcher)
	rejectProfUC := ucVerification.NewRejectProfessional(verificationRepo, auditDispatcher)
	setBlockedUC := ucVerification.NewSetBlocked(verificationRepo, sessions, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	customerHandler := handlers.NewCustomerHandler(
		db,
		browseUC,
		createRequestUC,
		updatePriceUC,
		fileReviewUC,
		processPaymentUC,
		historyUC,
	)

	professionalHandler := handlers.NewProfessionalHandler(
		acceptRequestUC,
		rejectRequestUC,
		historyUC,
	)

	adminHandler := handlers.NewAdminHandler(
		db,
		auditDispatcher,
		approveUC,
		rejectProfUC,
		setBlockedUC,
		reassignUC,
		chartsUC,
		uploader,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/api-key", authHandler.GenerateAPIKey)

			// ------------------------------
			// CUSTOMER
			// ------------------------------
			customer := secured.Group("/customer")
			customer.Use(middleware.RequireRole(models.RoleCustomer))
			{
				customer.GET("/services", customerHandler.ListServices)
				customer.GET("/professionals", customerHandler.BrowseProfessionals)

				customer.POST("/requests", customerHandler.BookService)
				customer.PATCH("/requests/:id/price", customerHandler.UpdateRequestPrice)
				customer.POST("/requests/:id/review", customerHandler.FileReview)
				customer.POST("/requests/:id/payment", customerHandler.ProcessPayment)
				customer.GET("/requests", customerHandler.ServiceHistory)

				customer.GET("/profile/:id", customerHandler.Profile)
			}

			// ------------------------------
			// PROFESSIONAL
			// ------------------------------
			professional := secured.Group("/professional")
			professional.Use(middleware.RequireRole(models.RoleProfessional))
			{
				professional.GET("/requests", professionalHandler.ListAssigned)
				professional.PATCH("/requests/:id/accept", professionalHandler.Accept)
				professional.PATCH("/requests/:id/reject", professionalHandler.Reject)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/dashboard", adminHandler.Dashboard)
				admin.GET("/charts", adminHandler.ChartData)
				admin.GET("/search", adminHandler.Search)

				admin.POST("/services", adminHandler.CreateService)
				admin.PATCH("/services/:id", adminHandler.UpdateService)
				admin.DELETE("/services/:id", adminHandler.DeleteService)
				admin.POST("/services/:id/image", adminHandler.UploadServiceImage)

				admin.PATCH("/professionals/:id/approve", adminHandler.ApproveProfessional)
				admin.PATCH("/professionals/:id/reject", adminHandler.RejectProfessional)

				admin.PATCH("/users/:id/blocked", adminHandler.SetUserBlocked)

				admin.PATCH("/requests/:id/reassign", adminHandler.ReassignRequest)
			}
		}
	}
}
