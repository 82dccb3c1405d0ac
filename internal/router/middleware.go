package router

import (
	"os"

	"github.com/gin-gonic/gin"
)

// URLMiddleware sets the base URL that handlers use to construct resource
// links.
//
// When API_URL is set, it is used verbatim. This is the common case behind
// a reverse proxy that terminates TLS and rewrites paths. Without it, the
// base URL is derived from the request.
func URLMiddleware() gin.HandlerFunc {
	apiURL := os.Getenv("API_URL")

	return func(c *gin.Context) {
		if apiURL != "" {
			c.Set("baseURL", apiURL)
			return
		}

		scheme := "http"
		if c.Request.TLS != nil || c.Request.Header.Get("x-forwarded-proto") == "https" {
			scheme = "https"
		}

		c.Set("baseURL", scheme+"://"+c.Request.Host)
	}
}
