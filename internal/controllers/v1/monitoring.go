package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
	"github.com/vending-machines/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterMonitoringRoutes registers the routes for monitoring with
// the RouterGroup that is passed.
func (co Controller) RegisterMonitoringRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/network-status", co.OptionsMonitoring)
		r.GET("/network-status", co.GetNetworkStatus)
	}
	{
		r.OPTIONS("/summary", co.OptionsMonitoring)
		r.GET("/summary", co.GetSummary)
	}
	{
		r.OPTIONS("/sales-trend", co.OptionsMonitoring)
		r.GET("/sales-trend", co.GetSalesTrend)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monitoring
// @Success		204
// @Router			/v1/monitoring/network-status [options]
// @Router			/v1/monitoring/summary [options]
// @Router			/v1/monitoring/sales-trend [options]
func (co Controller) OptionsMonitoring(c *gin.Context) {
	httputil.OptionsGet(c)
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// @Summary		Get network status
// @Description	Returns the devices matching the filter with the share of active devices and their total sales
// @Tags			Monitoring
// @Produce		json
// @Success		200				{object}	NetworkStatusResponse
// @Failure		400				{object}	NetworkStatusResponse
// @Failure		500				{object}	NetworkStatusResponse
// @Router			/v1/monitoring/network-status [get]
// @Param			status			query	string	false	"Filter by part of the device status name"
// @Param			connectionType	query	string	false	"Filter by part of the device type name"
func (co Controller) GetNetworkStatus(c *gin.Context) {
	var filter NetworkStatusQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, NetworkStatusResponse{
			Error: &s,
		})
		return
	}

	var devices []models.Device
	err := co.DB.Scopes(withDeviceDetails).Order("devices.created_at ASC").Find(&devices).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NetworkStatusResponse{
			Error: &s,
		})
		return
	}

	result := NetworkStatus{
		Devices:    []Device{},
		TotalMoney: decimal.Zero,
		Efficiency: decimal.Zero,
	}

	ids := []uuid.UUID{}
	for _, model := range devices {
		device := newDevice(c, model)

		if filter.Status != "" && !containsFold(device.StatusName, filter.Status) {
			continue
		}

		if filter.ConnectionType != "" && !containsFold(device.TypeName, filter.ConnectionType) {
			continue
		}

		if strings.EqualFold(device.StatusName, statusActive) {
			result.Active++
		}

		ids = append(ids, model.ID)
		result.Devices = append(result.Devices, device)
	}

	result.Total = len(result.Devices)
	result.Inactive = result.Total - result.Active

	if result.Total > 0 {
		result.Efficiency = decimal.NewFromInt(int64(result.Active)).
			Div(decimal.NewFromInt(int64(result.Total))).
			Mul(decimal.NewFromInt(100)).
			Round(2)

		var sales []models.Sale
		err = co.DB.Preload("Product").Where("device_id IN ?", ids).Find(&sales).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), NetworkStatusResponse{
				Error: &s,
			})
			return
		}

		result.TotalMoney = revenue(sales)
	}

	c.JSON(http.StatusOK, NetworkStatusResponse{Data: &result})
}

// revenue sums up the product prices of the sales.
func revenue(sales []models.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, sale := range sales {
		if sale.Product != nil {
			sum = sum.Add(sale.Product.Price)
		}
	}

	return sum
}

// today returns the current day in UTC.
func today() types.Date {
	return types.DateOf(time.Now().UTC())
}

// salesBetween returns all sales from the start of the first day until the
// end of the last day with their products.
func (co Controller) salesBetween(first, last types.Date) ([]models.Sale, error) {
	var sales []models.Sale
	err := co.DB.
		Preload("Product").
		Where("sales.sale_date_time >= ? AND sales.sale_date_time < ?", first.Time(), last.AddDays(1).Time()).
		Order("sales.sale_date_time ASC").
		Find(&sales).Error

	return sales, err
}

// @Summary		Get summary
// @Description	Returns revenue and service numbers for a day and the day before, and the value stocked in all devices
// @Tags			Monitoring
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Router			/v1/monitoring/summary [get]
// @Param			date	query	string	false	"The day to summarize, YYYY-MM-DD. Defaults to today."
func (co Controller) GetSummary(c *gin.Context) {
	var filter SummaryQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	day := filter.Date
	if day.IsZero() {
		day = today()
	}
	yesterday := day.AddDays(-1)

	summary, err := co.summary(day, yesterday)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

func (co Controller) summary(day, yesterday types.Date) (Summary, error) {
	sales, err := co.salesBetween(yesterday, day)
	if err != nil {
		return Summary{}, err
	}

	var salesToday, salesYesterday []models.Sale
	for _, sale := range sales {
		if types.DateOf(sale.SaleDateTime.UTC()) == day {
			salesToday = append(salesToday, sale)
			continue
		}
		salesYesterday = append(salesYesterday, sale)
	}

	var servicedToday, servicedYesterday int64
	err = co.DB.Model(&models.Service{}).Where("services.service_date = ?", day).Count(&servicedToday).Error
	if err != nil {
		return Summary{}, err
	}

	err = co.DB.Model(&models.Service{}).Where("services.service_date = ?", yesterday).Count(&servicedYesterday).Error
	if err != nil {
		return Summary{}, err
	}

	var inventories []models.Inventory
	err = co.DB.Preload("Product").Find(&inventories).Error
	if err != nil {
		return Summary{}, err
	}

	stocked := decimal.Zero
	for _, inventory := range inventories {
		if inventory.Product != nil {
			stocked = stocked.Add(inventory.Product.Price.Mul(decimal.NewFromInt(int64(inventory.Quantity))))
		}
	}

	revenueToday := revenue(salesToday)
	revenueYesterday := revenue(salesYesterday)

	// Collections are not tracked, all revenue counts as collected
	return Summary{
		Date:               day,
		MoneyInMachines:    stocked,
		ChangeInMachines:   stocked.Mul(decimal.New(1, -1)),
		RevenueToday:       revenueToday,
		RevenueYesterday:   revenueYesterday,
		CollectedToday:     revenueToday,
		CollectedYesterday: revenueYesterday,
		ServicedToday:      servicedToday,
		ServicedYesterday:  servicedYesterday,
	}, nil
}

// @Summary		Get sales trend
// @Description	Returns the revenue or the number of sales for every day with sales in the range
// @Tags			Monitoring
// @Produce		json
// @Success		200			{object}	SalesTrendResponse
// @Failure		400			{object}	SalesTrendResponse
// @Failure		500			{object}	SalesTrendResponse
// @Router			/v1/monitoring/sales-trend [get]
// @Param			startDate	query	string	false	"First day, YYYY-MM-DD. Defaults to nine days before the end date."
// @Param			endDate		query	string	false	"Last day, YYYY-MM-DD. Defaults to today."
// @Param			byAmount	query	bool	false	"Sum the revenue instead of counting the sales. Defaults to true."
func (co Controller) GetSalesTrend(c *gin.Context) {
	var filter SalesTrendQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SalesTrendResponse{
			Error: &s,
		})
		return
	}

	end := filter.EndDate
	if end.IsZero() {
		end = today()
	}

	start := filter.StartDate
	if start.IsZero() {
		start = end.AddDays(-9)
	}

	if end.Time().Before(start.Time()) {
		s := errDateRangeInvalid.Error()
		c.JSON(http.StatusBadRequest, SalesTrendResponse{
			Error: &s,
		})
		return
	}

	sales, err := co.salesBetween(start, end)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SalesTrendResponse{
			Error: &s,
		})
		return
	}

	points := []SalesTrendPoint{}
	for _, sale := range sales {
		day := types.DateOf(sale.SaleDateTime.UTC())

		value := decimal.NewFromInt(1)
		if filter.ByAmount {
			value = decimal.Zero
			if sale.Product != nil {
				value = sale.Product.Price
			}
		}

		i := slices.IndexFunc(points, func(p SalesTrendPoint) bool { return p.Date == day })
		if i < 0 {
			points = append(points, SalesTrendPoint{Date: day, Value: value})
			continue
		}
		points[i].Value = points[i].Value.Add(value)
	}

	c.JSON(http.StatusOK, SalesTrendResponse{Data: points})
}
