package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/catalog-comb/app/publish"
)

const (
	csvContentType = "text/csv; charset=utf-8"
	xmlContentType = "application/xml; charset=utf-8"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	// spreadsheets and browser tools fetch the feeds cross-origin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/"+publish.PreviewFile, handler.ServeFile(publish.PreviewFile, csvContentType))
	r.GET("/"+publish.LightFile, handler.ServeFile(publish.LightFile, csvContentType))
	r.GET("/"+publish.FeedFile, handler.ServeFile(publish.FeedFile, xmlContentType))

	r.GET("/health", handler.GetHealth)

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
