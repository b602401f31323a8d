package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/licitavision/placsp-connector/internal/config"
	"github.com/licitavision/placsp-connector/internal/logger"
)

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg config.ServerConfig, debug bool, h *Handler, metrics http.Handler, log logger.Logger) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(metrics))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/notices", h.listNotices)
		v1.GET("/notices/detail", h.noticeDetail)
		v1.POST("/cpv/scrape", h.scrapeCPVs)
		v1.GET("/cpv", h.catalogCodes)
		v1.GET("/cpv/filter", h.filterCatalog)
	}

	return r
}

// corsConfig allows the configured origins plus, when a suffix is set,
// any https origin ending with it. Frontend preview deployments get a
// fresh hostname per deploy, so a static origin list cannot cover them.
func corsConfig(cfg config.ServerConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	c.MaxAge = 12 * time.Hour
	c.AllowOriginFunc = func(origin string) bool {
		for _, allowed := range cfg.CORSOrigins {
			if origin == allowed {
				return true
			}
		}
		return cfg.CORSOriginSuffix != "" &&
			strings.HasPrefix(origin, "https://") &&
			strings.HasSuffix(origin, cfg.CORSOriginSuffix)
	}
	return c
}

// requestLogger logs one line per request.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}
