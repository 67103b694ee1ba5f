package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
)

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// RegisterVersionRoutes registers the version endpoint. version is the
// version reported by it.
func RegisterVersionRoutes(r *gin.RouterGroup, version string) {
	r.GET("", GetVersion(version))
	r.OPTIONS("", OptionsVersion)
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, VersionResponse{
			Data: VersionObject{
				Version: version,
			},
		})
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
