package api

import (
	"context"
	"net/http"
	"time"

	models "github.com/PartnerPortal/PartnerPortal-Backend/api/models"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/providers"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 5 * time.Second

type Health struct {
	server *Server
}

func (h Health) router(server *Server) {
	h.server = server

	serverGroupV1 := server.router.Group("/api/v1/health")
	serverGroupV1.GET("", h.health)
}

// health reports the registered providers. With deep=true every provider
// that can be pinged is checked, which for Dataverse forces a token fetch.
func (h *Health) health(ctx *gin.Context) {
	resp := models.HealthResponse{
		Status:    "ok",
		Providers: h.server.provider.Names(),
	}

	if ctx.Query("deep") == "true" {
		resp.Checks = make(map[string]string)

		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()

		for _, name := range resp.Providers {
			p, exists := h.server.provider.GetProvider(name)
			if !exists {
				continue
			}
			checker, ok := p.(providers.HealthChecker)
			if !ok {
				continue
			}
			if err := checker.Ping(checkCtx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = basemodels.AsAPIError(err).Message
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	if d365, ok := h.server.dataverseClient(); ok {
		if exp, ok := d365.TokenExpiry(); ok {
			resp.TokenExpiresAt = &exp
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, basemodels.NewSuccess("health", resp))
}
