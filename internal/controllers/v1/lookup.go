package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// Lookup is the ID and display name of a resource, used for drop-downs.
type Lookup struct {
	ID   uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the resource
	Name string    `json:"name" example:"ООО Вендинг Плюс"`                   // Display name of the resource
}

type LookupListResponse struct {
	Data  []Lookup `json:"data"`                                                                // List of resources
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type LookupLinks struct {
	Companies      string `json:"companies" example:"https://example.com/api/v1/lookups/companies"`            // Companies
	DeviceModels   string `json:"deviceModels" example:"https://example.com/api/v1/lookups/device-models"`     // Device models
	DeviceStatuses string `json:"deviceStatuses" example:"https://example.com/api/v1/lookups/device-statuses"` // Device statuses
	Modems         string `json:"modems" example:"https://example.com/api/v1/lookups/modems"`                  // Modems by serial number
	PaymentMethods string `json:"paymentMethods" example:"https://example.com/api/v1/lookups/payment-methods"` // Payment methods
	Locations      string `json:"locations" example:"https://example.com/api/v1/lookups/locations"`            // Locations by installation address
}

type LookupsResponse struct {
	Links LookupLinks `json:"links"` // Links to all lookup lists
}

// RegisterLookupRoutes registers the routes for lookup lists with
// the RouterGroup that is passed.
func (co Controller) RegisterLookupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsLookups)
	r.GET("", co.GetLookups)

	for path, handler := range map[string]gin.HandlerFunc{
		"/companies":       lookups(co, "name", func(m models.Company) Lookup { return Lookup{m.ID, m.Name} }),
		"/device-models":   lookups(co, "name", func(m models.DeviceModel) Lookup { return Lookup{m.ID, m.Name} }),
		"/device-statuses": lookups(co, "name", func(m models.DeviceStatus) Lookup { return Lookup{m.ID, m.Name} }),
		"/modems":          lookups(co, "serial_number", func(m models.Modem) Lookup { return Lookup{m.ID, m.SerialNumber} }),
		"/payment-methods": lookups(co, "name", func(m models.PaymentMethod) Lookup { return Lookup{m.ID, m.Name} }),
		"/locations":       lookups(co, "installation_address", func(m models.Location) Lookup { return Lookup{m.ID, m.InstallationAddress} }),
	} {
		r.OPTIONS(path, co.OptionsLookups)
		r.GET(path, handler)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Lookups
// @Success		204
// @Router			/v1/lookups [options]
func (co Controller) OptionsLookups(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Lookup lists
// @Description	Returns links to all lookup lists
// @Tags			Lookups
// @Success		200	{object}	LookupsResponse
// @Router			/v1/lookups [get]
func (co Controller) GetLookups(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, LookupsResponse{
		Links: LookupLinks{
			Companies:      fmt.Sprintf("%s/v1/lookups/companies", url),
			DeviceModels:   fmt.Sprintf("%s/v1/lookups/device-models", url),
			DeviceStatuses: fmt.Sprintf("%s/v1/lookups/device-statuses", url),
			Modems:         fmt.Sprintf("%s/v1/lookups/modems", url),
			PaymentMethods: fmt.Sprintf("%s/v1/lookups/payment-methods", url),
			Locations:      fmt.Sprintf("%s/v1/lookups/locations", url),
		},
	})
}

// lookups returns a handler listing all resources of type T ordered by column.
//
// @Summary		Get lookup list
// @Description	Returns the ID and display name of all resources of one type
// @Tags			Lookups
// @Produce		json
// @Success		200	{object}	LookupListResponse
// @Failure		500	{object}	LookupListResponse
// @Router			/v1/lookups/companies [get]
// @Router			/v1/lookups/device-models [get]
// @Router			/v1/lookups/device-statuses [get]
// @Router			/v1/lookups/modems [get]
// @Router			/v1/lookups/payment-methods [get]
// @Router			/v1/lookups/locations [get]
func lookups[T any](co Controller, column string, lookup func(T) Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resources []T
		err := co.DB.Order(fmt.Sprintf("%s ASC", column)).Find(&resources).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), LookupListResponse{
				Error: &s,
			})
			return
		}

		data := make([]Lookup, 0, len(resources))
		for _, r := range resources {
			data = append(data, lookup(r))
		}

		c.JSON(http.StatusOK, LookupListResponse{Data: data})
	}
}
