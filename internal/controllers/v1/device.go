package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// RegisterDeviceRoutes registers the routes for devices with
// the RouterGroup that is passed.
func (co Controller) RegisterDeviceRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsDevices)
		r.GET("", co.GetDevices)
		r.POST("", co.CreateDevices)
	}
	{
		r.OPTIONS("/:id", co.OptionsDeviceDetail)
		r.GET("/:id", co.GetDevice)
		r.PATCH("/:id", co.UpdateDevice)
		r.DELETE("/:id", co.DeleteDevice)
	}
	{
		r.OPTIONS("/:id/detach-modem", co.OptionsDetachModem)
		r.PATCH("/:id/detach-modem", co.DetachModem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Devices
// @Success		204
// @Router			/v1/devices [options]
func (co Controller) OptionsDevices(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Devices
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/devices/{id} [options]
func (co Controller) OptionsDeviceDetail(c *gin.Context) {
	resourceOptionsDetail(co, c, models.Device{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Devices
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/devices/{id}/detach-modem [options]
func (co Controller) OptionsDetachModem(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// @Summary		Create devices
// @Description	Creates new devices
// @Tags			Devices
// @Produce		json
// @Success		201		{object}	DeviceCreateResponse
// @Failure		400		{object}	DeviceCreateResponse
// @Failure		500		{object}	DeviceCreateResponse
// @Param			devices	body		[]DeviceEditable	true	"Devices"
// @Router			/v1/devices [post]
func (co Controller) CreateDevices(c *gin.Context) {
	var devices []DeviceEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &devices)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DeviceCreateResponse{}

	for _, create := range devices {
		err = create.validate()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		device := create.model()
		err = co.DB.Create(&device).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = co.DB.Scopes(withDeviceDetails).First(&device, device.ID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newDevice(c, device)
		r.Data = append(r.Data, DeviceResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get devices
// @Description	Returns a list of devices
// @Tags			Devices
// @Produce		json
// @Success		200			{object}	DeviceListResponse
// @Failure		400			{object}	DeviceListResponse
// @Failure		500			{object}	DeviceListResponse
// @Router			/v1/devices [get]
// @Param			deviceModel	query	string	false	"Filter by device model ID"
// @Param			location	query	string	false	"Filter by location ID"
// @Param			company		query	string	false	"Filter by company ID"
// @Param			status		query	string	false	"Filter by device status ID"
// @Param			modem		query	string	false	"Filter by modem ID"
// @Param			search		query	string	false	"Search for this text in the model name, device type name and company name"
// @Param			offset		query	uint	false	"The offset of the first device returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of devices to return. Defaults to 50."
func (co Controller) GetDevices(c *gin.Context) {
	var filter DeviceQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DeviceListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Model(&models.Device{}).
		Where(&where, queryFields...)

	// Devices without a device type or company are still found by the other names
	if filter.Search != "" {
		pattern := contains(filter.Search)

		q = q.
			Joins("LEFT JOIN device_models AS search_device_models ON search_device_models.id = devices.device_model_id").
			Joins("LEFT JOIN device_types AS search_device_types ON search_device_types.id = search_device_models.device_type_id").
			Joins("LEFT JOIN companies AS search_companies ON search_companies.id = devices.company_id").
			Where(
				co.DB.Where("LOWER(search_device_models.name) LIKE ?", pattern).
					Or("LOWER(search_device_types.name) LIKE ?", pattern).
					Or("LOWER(search_companies.name) LIKE ?", pattern),
			)
	}

	data, pagination, err := list(c, q.Order("devices.installation_date ASC, devices.created_at ASC"), setFields, filter.Offset, filter.Limit, newDevice, withDeviceDetails)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DeviceListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DeviceListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get device
// @Description	Returns a specific device with the names of all resources it references
// @Tags			Devices
// @Produce		json
// @Success		200	{object}	DeviceResponse
// @Failure		400	{object}	DeviceResponse
// @Failure		404	{object}	DeviceResponse
// @Failure		500	{object}	DeviceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/devices/{id} [get]
func (co Controller) GetDevice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	var device models.Device
	err = co.DB.Scopes(withDeviceDetails).First(&device, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	apiResource := newDevice(c, device)
	c.JSON(http.StatusOK, DeviceResponse{Data: &apiResource})
}

// @Summary		Update device
// @Description	Updates an existing device. Only values to be updated need to be specified.
// @Tags			Devices
// @Accept			json
// @Produce		json
// @Success		200		{object}	DeviceResponse
// @Failure		400		{object}	DeviceResponse
// @Failure		404		{object}	DeviceResponse
// @Failure		500		{object}	DeviceResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			device	body		DeviceEditable	true	"Device"
// @Router			/v1/devices/{id} [patch]
func (co Controller) UpdateDevice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	var device models.Device
	err = co.DB.First(&device, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, DeviceEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data DeviceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Model(&device).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	co.deviceResponse(c, device)
}

// @Summary		Detach modem
// @Description	Removes the modem from a device. The modem itself is kept.
// @Tags			Devices
// @Produce		json
// @Success		200	{object}	DeviceResponse
// @Failure		400	{object}	DeviceResponse
// @Failure		404	{object}	DeviceResponse
// @Failure		500	{object}	DeviceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/devices/{id}/detach-modem [patch]
func (co Controller) DetachModem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	var device models.Device
	err = co.DB.First(&device, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Model(&device).Update("modem_id", nil).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	co.deviceResponse(c, device)
}

// deviceResponse reloads the device with its details and writes it.
func (co Controller) deviceResponse(c *gin.Context, device models.Device) {
	var reloaded models.Device
	err := co.DB.Scopes(withDeviceDetails).First(&reloaded, device.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DeviceResponse{
			Error: &e,
		})
		return
	}

	apiResource := newDevice(c, reloaded)
	c.JSON(http.StatusOK, DeviceResponse{Data: &apiResource})
}

// @Summary		Delete device
// @Description	Deletes a device
// @Tags			Devices
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/devices/{id} [delete]
func (co Controller) DeleteDevice(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var device models.Device
	err = co.DB.First(&device, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&device).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
