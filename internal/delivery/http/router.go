package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/handlers"
)

// NewRouter wires the negotiation API. Admin routes live under
// /negotiation/admin and are expected to sit behind the storefront's
// gateway auth; this service does not authenticate them itself.
func NewRouter(
	negotiationHandler *handlers.NegotiationHandler,
	ruleHandler *handlers.RuleHandler,
	tokenHandler *handlers.TokenHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	negotiation := router.Group("/negotiation")
	{
		negotiation.POST("/offer", negotiationHandler.SubmitOffer)
		negotiation.GET("/sessions/:id", negotiationHandler.GetSession)

		negotiation.GET("/rules", ruleHandler.ListEnabled)
		negotiation.GET("/rules/:sku", ruleHandler.GetRule)

		negotiation.GET("/tokens/:token", tokenHandler.ValidateToken)
		negotiation.POST("/tokens/:token/redeem", tokenHandler.RedeemToken)

		admin := negotiation.Group("/admin")
		{
			admin.GET("/rules", ruleHandler.ListAll)
			admin.POST("/rules", ruleHandler.UpsertRule)
			admin.DELETE("/rules/:sku", ruleHandler.DeleteRule)

			admin.GET("/analytics", analyticsHandler.GetReport)
			admin.GET("/analytics/realtime", analyticsHandler.GetRealtime)
			admin.GET("/analytics/export", analyticsHandler.ExportCSV)
		}
	}

	return router
}
