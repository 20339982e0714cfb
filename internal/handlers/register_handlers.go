package handlers

import (
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	repo portsrepo.DocumentRepository,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, repo)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	repo portsrepo.DocumentRepository,
) {
	v1 := r.Group("/api/v1")

	registerAccountingRoutes(v1, services.Accounting, services.Ledger, services.TrialBalance)
	registerRecordRoutes(v1, repo)
	registerCatalogRoutes(v1, repo)
}
