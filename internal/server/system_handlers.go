package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mithunit18/freelance/internal/api"
	"github.com/Mithunit18/freelance/internal/autorelease"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Run an auto-release scan
// @Description  Releases escrowed payments whose event date plus grace window has passed.
// @Tags         system
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} autorelease.Report
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/escrow/auto-release [post]
func AutoReleaseScan(scanner *autorelease.Scanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := scanner.Run(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
