package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/config"
	"github.com/glencullen/golfpoi/internal/middleware"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
)

// AccountsWebHandler renders the signup/login/settings pages and manages
// the session cookie.
type AccountsWebHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAccountsWebHandler(db *gorm.DB, cfg *config.Config, dispatcher *audit.Dispatcher) *AccountsWebHandler {
	return &AccountsWebHandler{db: db, config: cfg, audit: dispatcher}
}

func (h *AccountsWebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title": "Welcome to GolfPOI",
	})
}

func (h *AccountsWebHandler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.tmpl", gin.H{
		"Title": "Sign up for GolfPOI",
	})
}

func (h *AccountsWebHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Title": "Login to GolfPOI",
	})
}

func (h *AccountsWebHandler) Signup(c *gin.Context) {
	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	if errs := validators.ValidateUser(firstName, lastName, email, password, true); len(errs) > 0 {
		c.HTML(http.StatusBadRequest, "signup.tmpl", gin.H{
			"Title":  "Sign up for GolfPOI",
			"Errors": errs,
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.HTML(http.StatusBadRequest, "signup.tmpl", gin.H{
			"Title":  "Sign up for GolfPOI",
			"Errors": []string{"Email address is already registered."},
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating account.")
		return
	}

	user := models.User{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		PasswordHash:  string(hashed),
		LoginCount:    1,
		LastLoginDate: time.Now().Format(lastLoginFormat),
	}

	if err := h.db.Create(&user).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating account.")
		return
	}

	if err := middleware.SetSessionCookie(c, h.config, user.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating session.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "signup", Entity: "user", EntityID: &user.ID})

	c.Redirect(http.StatusFound, "/report")
}

func (h *AccountsWebHandler) Login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{
			"Title":  "Login to GolfPOI",
			"Errors": []string{"Email or password is incorrect."},
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{
			"Title":  "Login to GolfPOI",
			"Errors": []string{"Email or password is incorrect."},
		})
		return
	}

	user.LoginCount++
	user.LastLoginDate = time.Now().Format(lastLoginFormat)
	if err := h.db.Save(&user).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error logging in.")
		return
	}

	if err := middleware.SetSessionCookie(c, h.config, user.ID); err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating session.")
		return
	}

	c.Redirect(http.StatusFound, "/report")
}

func (h *AccountsWebHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.config)
	c.Redirect(http.StatusFound, "/")
}

func (h *AccountsWebHandler) ShowSettings(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "settings.tmpl", gin.H{
		"Title": "GolfPOI Settings",
		"User":  user,
	})
}

func (h *AccountsWebHandler) UpdateSettings(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	if errs := validators.ValidateUser(firstName, lastName, email, password, false); len(errs) > 0 {
		c.HTML(http.StatusBadRequest, "settings.tmpl", gin.H{
			"Title":  "GolfPOI Settings",
			"User":   user,
			"Errors": errs,
		})
		return
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "Error updating settings.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email

	if err := h.db.Save(user).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error updating settings.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "update_settings", Entity: "user", EntityID: &user.ID})

	c.HTML(http.StatusOK, "settings.tmpl", gin.H{
		"Title": "GolfPOI Settings",
		"User":  user,
	})
}

func (h *AccountsWebHandler) currentUser(c *gin.Context) (*models.User, bool) {
	id, ok := sessionUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return nil, false
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return nil, false
	}

	return &user, true
}
