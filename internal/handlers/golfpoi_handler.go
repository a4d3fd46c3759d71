package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/imagestore"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
)

type GolfPOIHandler struct {
	db     *gorm.DB
	images imagestore.Store
	audit  *audit.Dispatcher
}

func NewGolfPOIHandler(db *gorm.DB, images imagestore.Store, dispatcher *audit.Dispatcher) *GolfPOIHandler {
	return &GolfPOIHandler{db: db, images: images, audit: dispatcher}
}

// --------- Requests ---------

type CoursePayload struct {
	CourseName    string          `json:"courseName" binding:"required"`
	CourseDesc    string          `json:"courseDesc" binding:"required"`
	Category      *uint           `json:"category"`
	RelatedImages []string        `json:"relatedImages"`
	Location      models.GeoPoint `json:"location"`
}

// --------- Handlers ---------

func (h *GolfPOIHandler) Find(c *gin.Context) {
	var courses []models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").Order("id ASC").Find(&courses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_courses", "Error listing courses.")
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *GolfPOIHandler) FindOne(c *gin.Context) {
	course, ok := h.loadCourse(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *GolfPOIHandler) FindByCategory(c *gin.Context) {
	categoryID, ok := parseID(c.Param("categoryId"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "No category with this id.")
		return
	}

	var courses []models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&courses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_courses", "Error listing courses for category.")
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *GolfPOIHandler) Create(c *gin.Context) {
	var req CoursePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	req.CourseName = validators.Sanitize(req.CourseName)
	req.CourseDesc = validators.Sanitize(req.CourseDesc)

	if errs := validators.ValidateCourse(req.CourseName, req.CourseDesc, req.Location); len(errs) > 0 {
		httperr.BadRequest(c, "validation_failed", errs[0])
		return
	}

	if req.Category != nil {
		var category models.LocationCategory
		if err := h.db.First(&category, *req.Category).Error; err != nil {
			httperr.NotFound(c, "category_not_found", "No category with this id.")
			return
		}
	}

	course := models.GolfPOI{
		CourseName:      req.CourseName,
		CourseDesc:      req.CourseDesc,
		CategoryID:      req.Category,
		RelatedImages:   req.RelatedImages,
		Location:        req.Location,
		LastUpdatedByID: tokenUserID(c),
	}
	if course.RelatedImages == nil {
		course.RelatedImages = []string{}
	}

	if err := h.db.Create(&course).Error; err != nil {
		httperr.Internal(c, "failed_to_create_course", "Error creating course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "create", Entity: "course", EntityID: &course.ID})

	c.JSON(http.StatusCreated, course)
}

// Update reassigns course fields for the course and attributes the change
// to the user named in the path.
func (h *GolfPOIHandler) Update(c *gin.Context) {
	userID, ok := parseID(c.Param("userId"))
	if !ok {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	course, ok := h.loadCourse(c, c.Param("courseId"))
	if !ok {
		return
	}

	var req CoursePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	req.CourseName = validators.Sanitize(req.CourseName)
	req.CourseDesc = validators.Sanitize(req.CourseDesc)

	if errs := validators.ValidateCourse(req.CourseName, req.CourseDesc, req.Location); len(errs) > 0 {
		httperr.BadRequest(c, "validation_failed", errs[0])
		return
	}

	if req.Category != nil {
		var category models.LocationCategory
		if err := h.db.First(&category, *req.Category).Error; err != nil {
			httperr.NotFound(c, "category_not_found", "No category with this id.")
			return
		}
		course.CategoryID = req.Category
	}

	course.CourseName = req.CourseName
	course.CourseDesc = req.CourseDesc
	course.Location = req.Location
	course.LastUpdatedByID = &user.ID

	if err := h.db.Save(course).Error; err != nil {
		httperr.Internal(c, "failed_to_update_course", "Error updating course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "update", Entity: "course", EntityID: &course.ID})

	c.JSON(http.StatusCreated, course)
}

// UploadImage forwards the multipart image to the media host and appends
// the returned id to the course's image list.
func (h *GolfPOIHandler) UploadImage(c *gin.Context) {
	course, ok := h.loadCourse(c, c.Param("id"))
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("imagefile")
	if err != nil {
		httperr.NotFound(c, "no_image_found", "No image found to upload.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		httperr.NotFound(c, "no_image_found", "No image found to upload.")
		return
	}

	publicID, err := h.images.Upload(c.Request.Context(), data)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Error adding image to course.")
		return
	}

	course.RelatedImages = append(course.RelatedImages, publicID)
	if err := h.db.Save(course).Error; err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Error adding image to course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "upload_image", Entity: "course", EntityID: &course.ID})

	c.JSON(http.StatusCreated, course)
}

// DeleteImage removes the image from the media host first, then from the
// course's list. An id missing from the list is a local no-op; the rest of
// the list keeps its order.
func (h *GolfPOIHandler) DeleteImage(c *gin.Context) {
	imageID := c.Param("id")

	if err := h.images.Delete(c.Request.Context(), imageID); err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Error deleting image from course.")
		return
	}

	course, ok := h.loadCourse(c, c.Param("courseId"))
	if !ok {
		return
	}

	userID, ok := parseID(c.Param("userId"))
	if !ok {
		httperr.NotFound(c, "user_not_found", "No user with this id.")
		return
	}

	course.RelatedImages = removeImage(course.RelatedImages, imageID)
	course.LastUpdatedByID = &userID

	if err := h.db.Save(course).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Error deleting image from course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &userID, Action: "delete_image", Entity: "course", EntityID: &course.ID})

	c.JSON(http.StatusOK, course)
}

func (h *GolfPOIHandler) DeleteOne(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "course_not_found", "No course with this id.")
		return
	}

	result := h.db.Delete(&models.GolfPOI{}, id)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_course", "Error deleting course.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "course_not_found", "No course with this id.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete", Entity: "course", EntityID: &id})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GolfPOIHandler) DeleteAll(c *gin.Context) {
	if err := h.db.Where("1 = 1").Delete(&models.GolfPOI{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_courses", "Error deleting courses.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: tokenUserID(c), Action: "delete_all", Entity: "course"})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------- Internal ---------

func (h *GolfPOIHandler) loadCourse(c *gin.Context, param string) (*models.GolfPOI, bool) {
	id, ok := parseID(param)
	if !ok {
		httperr.NotFound(c, "course_not_found", "No course with this id.")
		return nil, false
	}

	var course models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "course_not_found", "No course with this id.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_course", "Error fetching course.")
		return nil, false
	}

	return &course, true
}

func removeImage(images []string, id string) []string {
	for i, v := range images {
		if v == id {
			return append(images[:i], images[i+1:]...)
		}
	}
	return images
}
