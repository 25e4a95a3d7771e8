package handlers

import (
	"fmt"

	"github.com/SscSPs/propease_crm/cmd/docs"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/SscSPs/propease_crm/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.GET("/health", getHealth)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	public := r.Group("/api")
	public.GET("", getHome)
	protected := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAuthRoutes(public, protected, services.Auth, middleware.RateLimit(loginLimiter))
	registerGoogleOAuthRoutes(public, services, cfg.FrontendBaseURL, cfg.IsProduction)

	setupAPIRoutes(protected, cfg, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes delegates route registration to the entity handlers.
func setupAPIRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerUserRoutes(api, services.User)
	registerProjectRoutes(api, services.Project)
	registerProjectDetailRoutes(api, services.ProjectDetail, cfg.MaxUploadBytes)
	registerInventoryRoutes(api, services.Inventory)
	registerClientRoutes(api, services.Client)
	registerEnquiryRoutes(api, services.Enquiry, services.FollowUp)
	registerBookingRoutes(api, services.Booking)
	registerFollowUpRoutes(api, services.FollowUp)
	registerDashboardRoutes(api, services.Dashboard, services.Notification)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
