package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vending-machines/backend/internal/auth"
	"github.com/vending-machines/backend/internal/httputil"
	"github.com/vending-machines/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
//
// Registration and login are public, all other routes need a valid token.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	authenticated := auth.Middleware(co.Tokens)

	{
		r.OPTIONS("/register", co.OptionsAuthPost)
		r.POST("/register", co.Register)
		r.OPTIONS("/login", co.OptionsAuthPost)
		r.POST("/login", co.Login)
	}
	{
		r.OPTIONS("/info", co.OptionsAuthInfo)
		r.GET("/info", authenticated, co.GetAuthInfo)
		r.OPTIONS("/refresh-token", co.OptionsAuthPost)
		r.POST("/refresh-token", authenticated, co.RefreshToken)
		r.OPTIONS("/logout", co.OptionsAuthPost)
		r.POST("/logout", authenticated, co.Logout)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
// @Router			/v1/auth/login [options]
// @Router			/v1/auth/refresh-token [options]
// @Router			/v1/auth/logout [options]
func (co Controller) OptionsAuthPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/info [options]
func (co Controller) OptionsAuthInfo(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Creates a new user. The password is stored as bcrypt hash.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	if request.Password != request.RepeatPassword {
		e := errPasswordsDiffer.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &e,
		})
		return
	}

	user := request.model()
	user.HashedPassword, err = auth.HashPassword(request.Password)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	err = co.DB.Preload("Role").First(&user, user.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	apiResource := newUser(c, user)
	c.JSON(http.StatusCreated, UserResponse{Data: &apiResource})
}

// @Summary		Log in
// @Description	Authenticates with email and password. The token is returned and stored in the jwt_token cookie.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = co.DB.
		Preload("Role").
		Where(&models.User{Email: strings.ToLower(strings.TrimSpace(request.Email))}, "Email").
		First(&user).Error

	if errors.Is(err, models.ErrResourceNotFound) {
		err = auth.ErrCredentialsInvalid
	}

	if err == nil {
		err = auth.CheckPassword(user.HashedPassword, request.Password)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	co.session(c, user)
}

// @Summary		Current user
// @Description	Returns the profile of the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Router			/v1/auth/info [get]
func (co Controller) GetAuthInfo(c *gin.Context) {
	user, err := co.currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	apiResource := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}

// @Summary		Refresh token
// @Description	Issues a new token for the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		401	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Router			/v1/auth/refresh-token [post]
func (co Controller) RefreshToken(c *gin.Context) {
	user, err := co.currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	co.session(c, user)
}

// @Summary		Log out
// @Description	Removes the jwt_token cookie
// @Tags			Auth
// @Success		204
// @Failure		401	{object}	httpError
// @Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", secureCookie(c), true)
	c.JSON(http.StatusNoContent, nil)
}

// currentUser loads the authenticated user with its role.
func (co Controller) currentUser(c *gin.Context) (models.User, error) {
	id, err := auth.UserIDFrom(c)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = co.DB.Preload("Role").First(&user, id).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// session issues a token for the user, sets the cookie and writes the response.
func (co Controller) session(c *gin.Context, user models.User) {
	var role string
	if user.Role != nil {
		role = user.Role.Name
	}

	token, expires, err := co.Tokens.Issue(user.ID, user.Email, role)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &e,
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(co.Tokens.TTL().Seconds()), "/", "", secureCookie(c), true)

	c.JSON(http.StatusOK, SessionResponse{
		Data: &Session{
			User:      newUser(c, user),
			Token:     token,
			ExpiresAt: expires,
		},
	})
}

// secureCookie reports if cookies must only be sent via HTTPS, which is
// the case when the API is served via HTTPS.
func secureCookie(c *gin.Context) bool {
	return strings.HasPrefix(c.GetString(string(models.DBContextURL)), "https://")
}
