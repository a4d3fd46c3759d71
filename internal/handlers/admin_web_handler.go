package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
)

// AdminWebHandler renders the user-management pages. Every page requires
// the admin flag on the session user.
type AdminWebHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminWebHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminWebHandler {
	return &AdminWebHandler{db: db, audit: dispatcher}
}

func (h *AdminWebHandler) ManageUsers(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error listing users.")
		return
	}

	c.HTML(http.StatusOK, "manageusers.tmpl", gin.H{
		"Title": "Manage users",
		"Users": users,
		"Admin": admin,
	})
}

func (h *AdminWebHandler) DeleteUser(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	id, idOK := parseID(c.Param("id"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No user with this id.")
		return
	}

	if err := h.db.Delete(&models.User{}, id).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error deleting user.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &admin.ID, Action: "delete", Entity: "user", EntityID: &id})

	c.Redirect(http.StatusFound, "/manageUsers")
}

func (h *AdminWebHandler) DisplayUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	id, idOK := parseID(c.Param("id"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No user with this id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		renderError(c, http.StatusNotFound, "No user with this id.")
		return
	}

	c.HTML(http.StatusOK, "useredit.tmpl", gin.H{
		"Title": "Update user",
		"User":  user,
	})
}

func (h *AdminWebHandler) UpdateUser(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	id, idOK := parseID(c.Param("id"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No user with this id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		renderError(c, http.StatusNotFound, "No user with this id.")
		return
	}

	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	if errs := validators.ValidateUser(firstName, lastName, email, password, false); len(errs) > 0 {
		renderError(c, http.StatusBadRequest, errs...)
		return
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			renderError(c, http.StatusInternalServerError, "Error updating user.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	user.AdminUser = c.PostForm("adminUser") == "on"

	if err := h.db.Save(&user).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error updating user.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &admin.ID, Action: "update", Entity: "user", EntityID: &user.ID})

	c.Redirect(http.StatusFound, "/manageUsers")
}

func (h *AdminWebHandler) requireAdmin(c *gin.Context) (*models.User, bool) {
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

	if !user.AdminUser {
		renderError(c, http.StatusUnauthorized, "Admin privilege required for this page.")
		return nil, false
	}

	return &user, true
}
