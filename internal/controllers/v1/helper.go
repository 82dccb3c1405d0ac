package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// linkTo builds an absolute link to an API resource. The base URL is set
// for every request by the router middleware.
func linkTo(c *gin.Context, format string, args ...any) string {
	return c.GetString("baseURL") + "/v1" + fmt.Sprintf(format, args...)
}
