package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// RegisterContractRoutes registers the routes for contracts with
// the RouterGroup that is passed.
func (co Controller) RegisterContractRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsList)
	r.GET("", co.GetContracts)
}

// RegisterProductRoutes registers the routes for products with
// the RouterGroup that is passed.
func (co Controller) RegisterProductRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsList)
	r.GET("", co.GetProducts)
}

// RegisterSaleRoutes registers the routes for sales with
// the RouterGroup that is passed.
func (co Controller) RegisterSaleRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsList)
	r.GET("", co.GetSales)
}

// RegisterBookingRoutes registers the routes for bookings with
// the RouterGroup that is passed.
func (co Controller) RegisterBookingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBookings)
	r.GET("", co.GetBookings)
	r.POST("", co.CreateBookings)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commerce
// @Success		204
// @Router			/v1/contracts [options]
// @Router			/v1/products [options]
// @Router			/v1/sales [options]
func (co Controller) OptionsList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commerce
// @Success		204
// @Router			/v1/bookings [options]
func (co Controller) OptionsBookings(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get contracts
// @Description	Returns a list of contracts
// @Tags			Commerce
// @Produce		json
// @Success		200		{object}	ContractListResponse
// @Failure		400		{object}	ContractListResponse
// @Failure		500		{object}	ContractListResponse
// @Router			/v1/contracts [get]
// @Param			company	query	string	false	"Filter by company ID"
// @Param			status	query	string	false	"Filter by status"
// @Param			offset	query	uint	false	"The offset of the first contract returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of contracts to return. Defaults to 50."
func (co Controller) GetContracts(c *gin.Context) {
	var filter ContractQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ContractListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Order("contracts.signing_date DESC, contracts.contract_number ASC").
		Where(&where, queryFields...)

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newContract)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ContractListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get products
// @Description	Returns a list of products
// @Tags			Commerce
// @Produce		json
// @Success		200		{object}	ProductListResponse
// @Failure		400		{object}	ProductListResponse
// @Failure		500		{object}	ProductListResponse
// @Router			/v1/products [get]
// @Param			name	query	string	false	"Filter by part of the name"
// @Param			offset	query	uint	false	"The offset of the first product returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of products to return. Defaults to 50."
func (co Controller) GetProducts(c *gin.Context) {
	var filter ProductQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ProductListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := co.DB.Order("products.name ASC")
	if filter.Name != "" {
		q = q.Where("LOWER(products.name) LIKE ?", contains(filter.Name))
	}

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newProduct)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProductListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get sales
// @Description	Returns a list of sales, newest first
// @Tags			Commerce
// @Produce		json
// @Success		200				{object}	SaleListResponse
// @Failure		400				{object}	SaleListResponse
// @Failure		500				{object}	SaleListResponse
// @Router			/v1/sales [get]
// @Param			device			query	string	false	"Filter by device ID"
// @Param			product			query	string	false	"Filter by product ID"
// @Param			paymentMethod	query	string	false	"Filter by payment method ID"
// @Param			offset			query	uint	false	"The offset of the first sale returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of sales to return. Defaults to 50."
func (co Controller) GetSales(c *gin.Context) {
	var filter SaleQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SaleListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Order("sales.sale_date_time DESC").
		Where(&where, queryFields...)

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newSale, withSaleProduct)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SaleListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SaleListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get bookings
// @Description	Returns a list of bookings
// @Tags			Commerce
// @Produce		json
// @Success		200		{object}	BookingListResponse
// @Failure		400		{object}	BookingListResponse
// @Failure		500		{object}	BookingListResponse
// @Router			/v1/bookings [get]
// @Param			device	query	string	false	"Filter by device ID"
// @Param			company	query	string	false	"Filter by company ID"
// @Param			status	query	string	false	"Filter by status"
// @Param			offset	query	uint	false	"The offset of the first booking returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of bookings to return. Defaults to 50."
func (co Controller) GetBookings(c *gin.Context) {
	var filter BookingQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BookingListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Order("bookings.start_date DESC, bookings.created_at ASC").
		Where(&where, queryFields...)

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newBooking)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BookingListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BookingListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Create bookings
// @Description	Creates new bookings. A device can only have one confirmed booking.
// @Tags			Commerce
// @Produce		json
// @Success		201			{object}	BookingCreateResponse
// @Failure		400			{object}	BookingCreateResponse
// @Failure		500			{object}	BookingCreateResponse
// @Param			bookings	body		[]BookingEditable	true	"Bookings"
// @Router			/v1/bookings [post]
func (co Controller) CreateBookings(c *gin.Context) {
	var bookings []BookingEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &bookings)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BookingCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BookingCreateResponse{}

	for _, create := range bookings {
		if create.DeviceID == nil || create.CompanyID == nil {
			status = r.appendError(errBookingDeviceMissing, status)
			continue
		}

		var confirmed int64
		err = co.DB.
			Model(&models.Booking{}).
			Where(&models.Booking{DeviceID: create.DeviceID, Status: bookingConfirmed}).
			Count(&confirmed).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if confirmed > 0 {
			status = r.appendError(errDeviceAlreadyBooked, status)
			continue
		}

		booking := create.model()
		err = co.DB.Create(&booking).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newBooking(c, booking)
		r.Data = append(r.Data, BookingResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}
