package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vending-machines/backend/internal/models"
)

type RegisterRequest struct {
	LastName       string     `json:"lastName" binding:"required" example:"Иванов"`                        // Last name
	FirstName      string     `json:"firstName" binding:"required" example:"Иван"`                         // First name
	MiddleName     string     `json:"middleName" example:"Иванович"`                                       // Middle name
	Email          string     `json:"email" binding:"required,email" example:"ivanov@vending.example.com"` // Email address, used to log in
	Phone          string     `json:"phone" example:"+7 (900) 123-45-67"`                                  // Phone number
	Password       string     `json:"password" binding:"required,min=6" example:"s3cr3t!"`                 // Password, at least 6 characters
	RepeatPassword string     `json:"repeatPassword" binding:"required" example:"s3cr3t!"`                 // Must be equal to the password
	RoleID         *uuid.UUID `json:"roleId" example:"7d5c3b1a-9e8f-4d6c-b4a2-0f1e2d3c4b5a"`               // ID of the role
	CompanyID      *uuid.UUID `json:"companyId" example:"d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"`            // ID of the company the user works for
	Language       string     `json:"language" example:"ru"`                                               // Preferred language as BCP 47 tag
}

// model returns the user for the request. The password hash is not set.
func (r RegisterRequest) model() models.User {
	return models.User{
		LastName:   r.LastName,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		Email:      r.Email,
		Phone:      r.Phone,
		RoleID:     r.RoleID,
		CompanyID:  r.CompanyID,
		Language:   r.Language,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ivanov@vending.example.com"` // Email address
	Password string `json:"password" binding:"required" example:"s3cr3t!"`                 // Password
}

// User is the profile of a user. It never contains the password hash.
type User struct {
	models.DefaultModel
	LastName   string     `json:"lastName" example:"Иванов"`                                // Last name
	FirstName  string     `json:"firstName" example:"Иван"`                                 // First name
	MiddleName string     `json:"middleName" example:"Иванович"`                            // Middle name
	FullName   string     `json:"fullName" example:"Иванов Иван Иванович"`                  // Full name
	Email      string     `json:"email" example:"ivanov@vending.example.com"`               // Email address
	Phone      string     `json:"phone" example:"+7 (900) 123-45-67"`                       // Phone number
	RoleID     *uuid.UUID `json:"roleId" example:"7d5c3b1a-9e8f-4d6c-b4a2-0f1e2d3c4b5a"`    // ID of the role
	RoleName   string     `json:"roleName" example:"Администратор"`                         // Name of the role
	CompanyID  *uuid.UUID `json:"companyId" example:"d4f8ad56-0d80-4b9f-9c32-3a3e6c3f1d55"` // ID of the company
	Language   string     `json:"language" example:"ru"`                                    // Preferred language
	Links      UserLinks  `json:"links"`
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/auth/info"` // The profile of the current user
}

// newUser returns the API v1 representation of the resource
func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	var roleName string
	if model.Role != nil {
		roleName = model.Role.Name
	}

	return User{
		DefaultModel: model.DefaultModel,
		LastName:     model.LastName,
		FirstName:    model.FirstName,
		MiddleName:   model.MiddleName,
		FullName:     model.FullName(),
		Email:        model.Email,
		Phone:        model.Phone,
		RoleID:       model.RoleID,
		RoleName:     roleName,
		CompanyID:    model.CompanyID,
		Language:     model.Language,
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/auth/info", url),
		},
	}
}

type UserResponse struct {
	Error *string `json:"error" example:"a user with this email address already exists"` // The error, if any occurred
	Data  *User   `json:"data"`                                                          // The user
}

// Session is an issued access token with the user it belongs to.
type Session struct {
	User      User      `json:"user"`                                                         // The authenticated user
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.sig"` // Bearer token
	ExpiresAt time.Time `json:"expiresAt" example:"2025-04-02T20:28:44Z"`                     // Expiry time of the token
}

type SessionResponse struct {
	Error *string  `json:"error" example:"the email address or password is incorrect"` // The error, if any occurred
	Data  *Session `json:"data"`                                                       // The session
}
