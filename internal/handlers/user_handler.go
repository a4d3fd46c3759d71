package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/auth"
	"github.com/glencullen/golfpoi/internal/config"
	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
)

const lastLoginFormat = "2006-01-02 15:04:05"

type UserHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, cfg *config.Config, dispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, config: cfg, audit: dispatcher}
}

// --------- Requests ---------

type CreateUserRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	AdminUser     bool   `json:"adminUser"`
	LoginCount    int    `json:"loginCount"`
	LastLoginDate string `json:"lastLoginDate"`
}

type UpdateUserRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password"`
	AdminUser     *bool  `json:"adminUser,omitempty"`
	LoginCount    *int   `json:"loginCount,omitempty"`
	LastLoginDate string `json:"lastLoginDate"`
}

type AuthenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *UserHandler) Find(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Error listing users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "No user with this id.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Error fetching user.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) FindByEmail(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "No user with this email.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Error fetching user.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if errs := validators.ValidateUser(req.FirstName, req.LastName, req.Email, req.Password, true); len(errs) > 0 {
		httperr.BadRequest(c, "validation_failed", errs[0])
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email address is already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error creating user.")
		return
	}

	user := models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         email,
		PasswordHash:  string(hashed),
		AdminUser:     req.AdminUser,
		LoginCount:    req.LoginCount,
		LastLoginDate: req.LastLoginDate,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Error creating user.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "create", Entity: "user", EntityID: &user.ID})

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "User not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Error authenticating user.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid password.")
		return
	}

	user.LoginCount++
	user.LastLoginDate = time.Now().Format(lastLoginFormat)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Error authenticating user.")
		return
	}

	token, err := auth.IssueToken(&user, []byte(h.config.JWTSecret))
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error generating token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "No user with this id.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Error fetching user.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if errs := validators.ValidateUser(req.FirstName, req.LastName, req.Email, req.Password, false); len(errs) > 0 {
		httperr.BadRequest(c, "validation_failed", errs[0])
		return
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Error updating user.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.LastLoginDate != "" {
		user.LastLoginDate = req.LastLoginDate
	}
	if req.AdminUser != nil {
		user.AdminUser = *req.AdminUser
	}
	if req.LoginCount != nil {
		user.LoginCount = *req.LoginCount
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Error updating user.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "update", Entity: "user", EntityID: &user.ID})

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) DeleteOne(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	result := h.db.Delete(&models.User{}, id)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_user", "Error deleting user.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete", Entity: "user", EntityID: &id})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) DeleteAll(c *gin.Context) {
	if err := h.db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_users", "Error deleting users.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete_all", Entity: "user"})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
