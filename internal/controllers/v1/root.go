package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Auth         string `json:"auth" example:"https://example.com/api/v1/auth/info"`                       // Profile of the current user
	Companies    string `json:"companies" example:"https://example.com/api/v1/companies"`                  // URL of company list endpoint
	Devices      string `json:"devices" example:"https://example.com/api/v1/devices"`                      // URL of device list endpoint
	DeviceImport string `json:"deviceImport" example:"https://example.com/api/v1/device-import/upload"`    // URL of the device import endpoint
	Lookups      string `json:"lookups" example:"https://example.com/api/v1/lookups"`                      // URL of the lookup lists
	Events       string `json:"events" example:"https://example.com/api/v1/events"`                        // URL of event list endpoint
	Contracts    string `json:"contracts" example:"https://example.com/api/v1/contracts"`                  // URL of contract list endpoint
	Products     string `json:"products" example:"https://example.com/api/v1/products"`                    // URL of product list endpoint
	Sales        string `json:"sales" example:"https://example.com/api/v1/sales"`                          // URL of sale list endpoint
	Bookings     string `json:"bookings" example:"https://example.com/api/v1/bookings"`                    // URL of booking list endpoint
	Monitoring   string `json:"monitoring" example:"https://example.com/api/v1/monitoring/network-status"` // URL of the network status
	Generate     string `json:"generate" example:"https://example.com/api/v1/generate/money"`              // URL of the simulated telemetry
}

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Auth:         url + "/v1/auth/info",
			Companies:    url + "/v1/companies",
			Devices:      url + "/v1/devices",
			DeviceImport: url + "/v1/device-import/upload",
			Lookups:      url + "/v1/lookups",
			Events:       url + "/v1/events",
			Contracts:    url + "/v1/contracts",
			Products:     url + "/v1/products",
			Sales:        url + "/v1/sales",
			Bookings:     url + "/v1/bookings",
			Monitoring:   url + "/v1/monitoring/network-status",
			Generate:     url + "/v1/generate/money",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
