package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"worknook/services/identity"
	"worknook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	Identity identity.IdentityService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc identity.IdentityService) *AuthHandler {
	return &AuthHandler{Identity: svc}
}

type registerClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Location string `json:"location"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterClientHandler creates a client account and opens a session.
func (h *AuthHandler) RegisterClientHandler(c *gin.Context) {
	var req registerClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	session, err := h.Identity.RegisterClient(identity.RegisterClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Password: req.Password,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// RegisterWorkerHandler creates a worker account with its profile. The ID
// document arrives as a multipart file and is staged to a temp file before
// the service hands it to the file intake.
func (h *AuthHandler) RegisterWorkerHandler(c *gin.Context) {
	input := identity.RegisterWorkerInput{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		ServiceType: c.PostForm("service_type"),
		Experience:  c.PostForm("experience"),
		Bio:         c.PostForm("bio"),
		Password:    c.PostForm("password"),
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", "name, email, phone and password are required")
		return
	}

	fileHeader, err := c.FormFile("id_document")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", "id_document file is required")
		return
	}
	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		zap.L().Error("Failed to stage uploaded ID document", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save uploaded file", "")
		return
	}
	defer os.Remove(tempFilePath)
	input.DocumentPath = tempFilePath

	session, err := h.Identity.RegisterWorker(input)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates an account and opens a session.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	session, err := h.Identity.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
