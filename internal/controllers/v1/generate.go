package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/generator"
	"github.com/vending-machines/backend/internal/httputil"
)

// RegisterGenerateRoutes registers the routes for simulated telemetry
// with the RouterGroup that is passed.
func (co Controller) RegisterGenerateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/money", co.OptionsGenerate)
	r.GET("/money", co.GenerateMoney)
	r.OPTIONS("/connection", co.OptionsGenerate)
	r.GET("/connection", co.GenerateConnection)
	r.OPTIONS("/stock", co.OptionsGenerate)
	r.GET("/stock", co.GenerateStock)
	r.OPTIONS("/cash", co.OptionsGenerate)
	r.GET("/cash", co.GenerateCash)
	r.OPTIONS("/statuses", co.OptionsGenerate)
	r.GET("/statuses", co.GenerateStatuses)
}

type MoneyResponse struct {
	Data generator.Money `json:"data"` // Simulated money
}

type ConnectionResponse struct {
	Data generator.Connection `json:"data"` // Simulated connection state
}

type StockResponse struct {
	Data generator.Stock `json:"data"` // Simulated fill levels
}

type CashResponse struct {
	Data generator.Cash `json:"data"` // Simulated cash
}

type StatusesResponse struct {
	Data generator.Statuses `json:"data"` // Simulated device states
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Generate
// @Success		204
// @Router			/v1/generate/money [options]
// @Router			/v1/generate/connection [options]
// @Router			/v1/generate/stock [options]
// @Router			/v1/generate/cash [options]
// @Router			/v1/generate/statuses [options]
func (co Controller) OptionsGenerate(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Simulated money
// @Description	Returns a random amount of money collected by a device
// @Tags			Generate
// @Produce		json
// @Success		200	{object}	MoneyResponse
// @Router			/v1/generate/money [get]
func (co Controller) GenerateMoney(c *gin.Context) {
	c.JSON(http.StatusOK, MoneyResponse{Data: co.Generator.Money()})
}

// @Summary		Simulated connection
// @Description	Returns a random modem connection state
// @Tags			Generate
// @Produce		json
// @Success		200	{object}	ConnectionResponse
// @Router			/v1/generate/connection [get]
func (co Controller) GenerateConnection(c *gin.Context) {
	c.JSON(http.StatusOK, ConnectionResponse{Data: co.Generator.Connection()})
}

// @Summary		Simulated stock
// @Description	Returns random fill levels of a device
// @Tags			Generate
// @Produce		json
// @Success		200	{object}	StockResponse
// @Router			/v1/generate/stock [get]
func (co Controller) GenerateStock(c *gin.Context) {
	c.JSON(http.StatusOK, StockResponse{Data: co.Generator.Stock()})
}

// @Summary		Simulated cash
// @Description	Returns random cash and cashless amounts of a device
// @Tags			Generate
// @Produce		json
// @Success		200	{object}	CashResponse
// @Router			/v1/generate/cash [get]
func (co Controller) GenerateCash(c *gin.Context) {
	c.JSON(http.StatusOK, CashResponse{Data: co.Generator.Cash()})
}

// @Summary		Simulated device states
// @Description	Returns one or two random operational states of a device
// @Tags			Generate
// @Produce		json
// @Success		200	{object}	StatusesResponse
// @Router			/v1/generate/statuses [get]
func (co Controller) GenerateStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, StatusesResponse{Data: co.Generator.Statuses()})
}
