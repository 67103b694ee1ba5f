package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// RegisterEventRoutes registers the routes for events with
// the RouterGroup that is passed.
func (co Controller) RegisterEventRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsEvents)
		r.GET("", co.GetEvents)
		r.POST("", co.CreateEvents)
	}
	{
		r.OPTIONS("/:id", co.OptionsEventDetail)
		r.GET("/:id", co.GetEvent)
		r.PATCH("/:id", co.UpdateEvent)
		r.DELETE("/:id", co.DeleteEvent)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events [options]
func (co Controller) OptionsEvents(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [options]
func (co Controller) OptionsEventDetail(c *gin.Context) {
	resourceOptionsDetail(co, c, models.Event{})
}

// @Summary		Create events
// @Description	Creates new events
// @Tags			Events
// @Produce		json
// @Success		201			{object}	EventCreateResponse
// @Failure		400			{object}	EventCreateResponse
// @Failure		500			{object}	EventCreateResponse
// @Param			events	body		[]EventEditable	true	"Events"
// @Router			/v1/events [post]
func (co Controller) CreateEvents(c *gin.Context) {
	var events []EventEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &events)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EventCreateResponse{}

	for _, create := range events {
		if create.DeviceID == nil {
			status = r.appendError(errEventDeviceMissing, status)
			continue
		}

		event := create.model()
		err = co.DB.Create(&event).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newEvent(c, event)
		r.Data = append(r.Data, EventResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get events
// @Description	Returns a list of events, newest first
// @Tags			Events
// @Produce		json
// @Success		200			{object}	EventListResponse
// @Failure		400			{object}	EventListResponse
// @Failure		500			{object}	EventListResponse
// @Router			/v1/events [get]
// @Param			device		query	string	false	"Filter by device ID"
// @Param			eventType	query	string	false	"Filter by event type"
// @Param			search		query	string	false	"Search for this text in the description"
// @Param			fromDate	query	string	false	"Events at or after this time, RFC3339"
// @Param			untilDate	query	string	false	"Events before this time, RFC3339"
// @Param			offset		query	uint	false	"The offset of the first event returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of events to return. Defaults to 50."
func (co Controller) GetEvents(c *gin.Context) {
	var filter EventQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, EventListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Model(&models.Event{}).
		Order("events.date_time DESC, events.created_at DESC").
		Where(&where, queryFields...)

	if filter.Search != "" {
		q = q.Where("LOWER(events.description) LIKE ?", contains(filter.Search))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("events.date_time >= ?", filter.FromDate.UTC())
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("events.date_time < ?", filter.UntilDate.UTC())
	}

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newEvent)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EventListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EventListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get event
// @Description	Returns a specific event
// @Tags			Events
// @Produce		json
// @Success		200	{object}	EventResponse
// @Failure		400	{object}	EventResponse
// @Failure		404	{object}	EventResponse
// @Failure		500	{object}	EventResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [get]
func (co Controller) GetEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	var event models.Event
	err = co.DB.First(&event, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	apiResource := newEvent(c, event)
	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Update event
// @Description	Updates an existing event. Only values to be updated need to be specified.
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		200		{object}	EventResponse
// @Failure		400		{object}	EventResponse
// @Failure		404		{object}	EventResponse
// @Failure		500		{object}	EventResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			event	body		EventEditable	true	"Event"
// @Router			/v1/events/{id} [patch]
func (co Controller) UpdateEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	var event models.Event
	err = co.DB.First(&event, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, EventEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data EventEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Model(&event).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{
			Error: &e,
		})
		return
	}

	apiResource := newEvent(c, event)
	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Delete event
// @Description	Deletes a event
// @Tags			Events
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [delete]
func (co Controller) DeleteEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var event models.Event
	err = co.DB.First(&event, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&event).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
