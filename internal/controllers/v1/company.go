package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// RegisterCompanyRoutes registers the routes for companies with
// the RouterGroup that is passed.
func (co Controller) RegisterCompanyRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsCompanies)
		r.GET("", co.GetCompanies)
		r.POST("", co.CreateCompanies)
	}
	{
		r.OPTIONS("/:id", co.OptionsCompanyDetail)
		r.GET("/:id", co.GetCompany)
		r.PATCH("/:id", co.UpdateCompany)
		r.DELETE("/:id", co.DeleteCompany)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Companies
// @Success		204
// @Router			/v1/companies [options]
func (co Controller) OptionsCompanies(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Companies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/companies/{id} [options]
func (co Controller) OptionsCompanyDetail(c *gin.Context) {
	resourceOptionsDetail(co, c, models.Company{})
}

// @Summary		Create companies
// @Description	Creates new companies
// @Tags			Companies
// @Produce		json
// @Success		201			{object}	CompanyCreateResponse
// @Failure		400			{object}	CompanyCreateResponse
// @Failure		500			{object}	CompanyCreateResponse
// @Param			companies	body		[]CompanyEditable	true	"Companies"
// @Router			/v1/companies [post]
func (co Controller) CreateCompanies(c *gin.Context) {
	var companies []CompanyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &companies)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CompanyCreateResponse{}

	for _, create := range companies {
		company := create.model()
		err = co.DB.Create(&company).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newCompany(c, company)
		r.Data = append(r.Data, CompanyResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get companies
// @Description	Returns a list of companies
// @Tags			Companies
// @Produce		json
// @Success		200		{object}	CompanyListResponse
// @Failure		400		{object}	CompanyListResponse
// @Failure		500		{object}	CompanyListResponse
// @Router			/v1/companies [get]
// @Param			name	query	string	false	"Filter by part of the name"
// @Param			offset	query	uint	false	"The offset of the first company returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of companies to return. Defaults to 50."
func (co Controller) GetCompanies(c *gin.Context) {
	var filter CompanyQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CompanyListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := co.DB.Model(&models.Company{}).Order("companies.name ASC, companies.created_at ASC")

	if filter.Name != "" {
		q = q.Where("LOWER(companies.name) LIKE ?", contains(filter.Name))
	}

	data, pagination, err := list(c, q, setFields, filter.Offset, filter.Limit, newCompany)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CompanyListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CompanyListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Get company
// @Description	Returns a specific company
// @Tags			Companies
// @Produce		json
// @Success		200	{object}	CompanyResponse
// @Failure		400	{object}	CompanyResponse
// @Failure		404	{object}	CompanyResponse
// @Failure		500	{object}	CompanyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/companies/{id} [get]
func (co Controller) GetCompany(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	var company models.Company
	err = co.DB.First(&company, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	apiResource := newCompany(c, company)
	c.JSON(http.StatusOK, CompanyResponse{Data: &apiResource})
}

// @Summary		Update company
// @Description	Updates an existing company. Only values to be updated need to be specified.
// @Tags			Companies
// @Accept			json
// @Produce		json
// @Success		200		{object}	CompanyResponse
// @Failure		400		{object}	CompanyResponse
// @Failure		404		{object}	CompanyResponse
// @Failure		500		{object}	CompanyResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			company	body		CompanyEditable	true	"Company"
// @Router			/v1/companies/{id} [patch]
func (co Controller) UpdateCompany(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	var company models.Company
	err = co.DB.First(&company, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, CompanyEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data CompanyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Model(&company).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CompanyResponse{
			Error: &e,
		})
		return
	}

	apiResource := newCompany(c, company)
	c.JSON(http.StatusOK, CompanyResponse{Data: &apiResource})
}

// @Summary		Delete company
// @Description	Deletes a company
// @Tags			Companies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/companies/{id} [delete]
func (co Controller) DeleteCompany(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var company models.Company
	err = co.DB.First(&company, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&company).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
