// Package router wires handlers and middleware into the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"invoiceqc/internal/handler"
	"invoiceqc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	healthH *handler.HealthHandler,
	validateH *handler.ValidateHandler,
	extractH *handler.ExtractHandler,
	rulesH *handler.RulesHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/health", healthH.Health)
	r.GET("/healthz", healthH.Health)

	r.POST("/validate-json", validateH.ValidateJSON)
	r.POST("/extract-and-validate-pdfs", extractH.ExtractAndValidate)
	r.GET("/rules", rulesH.List)

	return r
}
