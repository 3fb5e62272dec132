package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/config"
	"bitbucket.org/crgw/rental-hub/internal/rental"
	"bitbucket.org/crgw/rental-hub/internal/rental/factory"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(cfg *config.Config, log *zerolog.Logger, factory *factory.Factory) (*gin.Engine, error) {
	startTime := time.Now()

	openApiContent, err := os.ReadFile(cfg.OpenapiLocation)
	if err != nil {
		return nil, err
	}

	openapiValidator, err := OpenapiValidator(openApiContent)
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery).
		Use(openapiValidator)

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openApiContent)
	})

	pprof.Register(router)

	rental.RegisterRoutes(router, factory)

	return router, nil
}
