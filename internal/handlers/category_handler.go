package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
)

type CategoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCategoryHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CategoryHandler {
	return &CategoryHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Province      string   `json:"province" binding:"required"`
	ValidCounties []string `json:"validCounties"`
}

// --------- Handlers ---------

func (h *CategoryHandler) Find(c *gin.Context) {
	var categories []models.LocationCategory
	if err := h.db.Preload("LastUpdatedBy").Order("id ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Error listing categories.")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) FindOne(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "No category with this id.")
		return
	}

	var category models.LocationCategory
	if err := h.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "category_not_found", "No category with this id.")
			return
		}
		httperr.Internal(c, "failed_to_get_category", "Error fetching category.")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	province := strings.TrimSpace(req.Province)
	if errs := validators.ValidateCategory(province); len(errs) > 0 {
		httperr.BadRequest(c, "validation_failed", errs[0])
		return
	}

	category := models.LocationCategory{
		Province:        province,
		ValidCounties:   req.ValidCounties,
		LastUpdatedByID: tokenUserID(c),
	}
	if category.ValidCounties == nil {
		category.ValidCounties = []string{}
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Error creating category.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "create", Entity: "category", EntityID: &category.ID})

	c.JSON(http.StatusCreated, category)
}

// DeleteOne refuses to remove a category that courses still reference, so
// no course is ever left pointing at a missing province.
func (h *CategoryHandler) DeleteOne(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "No category with this id.")
		return
	}

	if err := categoryDeletable(h.db, id); err != nil {
		if httperr.IsBusiness(err, "category_in_use") {
			httperr.BadRequest(c, "category_in_use", "Category is still referenced by courses.")
			return
		}
		httperr.Internal(c, "failed_to_delete_category", "Error deleting category.")
		return
	}

	result := h.db.Delete(&models.LocationCategory{}, id)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_category", "Error deleting category.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "category_not_found", "No category with this id.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete", Entity: "category", EntityID: &id})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAll is a bulk wipe for admin and test use. Course references are
// nulled first so the rows can go regardless of FK constraints.
func (h *CategoryHandler) DeleteAll(c *gin.Context) {
	if err := h.db.Model(&models.GolfPOI{}).Where("category_id IS NOT NULL").Update("category_id", nil).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_categories", "Error deleting categories.")
		return
	}

	if err := h.db.Where("1 = 1").Delete(&models.LocationCategory{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_categories", "Error deleting categories.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete_all", Entity: "category"})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------- Internal ---------

// categoryDeletable reports whether the category can go: a category still
// referenced by courses comes back as a business error.
func categoryDeletable(db *gorm.DB, id uint) error {
	var inUse int64
	if err := db.Model(&models.GolfPOI{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return httperr.ErrBusiness("category_in_use")
	}
	return nil
}
