package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/importer"
)

// RegisterDeviceImportRoutes registers the routes for device imports with
// the RouterGroup that is passed.
func (co Controller) RegisterDeviceImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/upload", co.OptionsDeviceImport)
	r.POST("/upload", co.ImportDevices)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/device-import/upload [options]
func (co Controller) OptionsDeviceImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import devices
// @Description	Imports devices from an .xlsx or .csv file.
// @Description	The file needs the columns ModelName, CompanyName, Address and InstallationDate (YYYY-MM-DD).
// @Description	StatusName and ModemSerial are optional. Device models, companies and locations are created
// @Description	when they do not exist yet. Either all devices of the file are imported or none.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	importer.Result
// @Failure		400		{object}	importer.Result
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/device-import/upload [post]
func (co Controller) ImportDevices(c *gin.Context) {
	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		err = importer.ErrNoFile
	}

	if err != nil {
		c.JSON(http.StatusBadRequest, importer.Result{Errors: []string{err.Error()}})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, importer.Result{Errors: []string{err.Error()}})
		return
	}
	defer f.Close()

	result := co.Importer.Import(c.Request.Context(), header.Filename, f)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
