package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/imagestore"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/validators"
	"github.com/glencullen/golfpoi/internal/weather"
)

// CourseWebHandler renders the course and category maintenance pages.
type CourseWebHandler struct {
	db      *gorm.DB
	images  imagestore.Store
	weather weather.Service
	audit   *audit.Dispatcher
}

func NewCourseWebHandler(db *gorm.DB, images imagestore.Store, svc weather.Service, dispatcher *audit.Dispatcher) *CourseWebHandler {
	return &CourseWebHandler{db: db, images: images, weather: svc, audit: dispatcher}
}

// Report lists every course. The admin flag decides which maintenance
// options the view offers.
func (h *CourseWebHandler) Report(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var courses []models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").Order("id ASC").Find(&courses).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error listing courses.")
		return
	}

	c.HTML(http.StatusOK, "report.tmpl", gin.H{
		"Title":     "Golf courses to date",
		"Courses":   courses,
		"AdminUser": user.AdminUser,
	})
}

func (h *CourseWebHandler) ReportCategory(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	categoryID, idOK := parseID(c.Param("categoryId"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No category with this id.")
		return
	}

	var courses []models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&courses).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error listing courses for category.")
		return
	}

	c.HTML(http.StatusOK, "report.tmpl", gin.H{
		"Title":     "Golf courses by province",
		"Courses":   courses,
		"AdminUser": user.AdminUser,
	})
}

func (h *CourseWebHandler) NewCourse(c *gin.Context) {
	var categories []models.LocationCategory
	if err := h.db.Order("province ASC").Find(&categories).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error listing categories.")
		return
	}

	c.HTML(http.StatusOK, "newcourse.tmpl", gin.H{
		"Title":      "Add a golf course",
		"Categories": categories,
	})
}

func (h *CourseWebHandler) AddCourse(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	courseName := validators.Sanitize(c.PostForm("courseName"))
	courseDesc := validators.Sanitize(c.PostForm("courseDesc"))
	location, locErr := parseLocationForm(c)

	if locErr != "" {
		renderError(c, http.StatusBadRequest, locErr)
		return
	}

	if errs := validators.ValidateCourse(courseName, courseDesc, location); len(errs) > 0 {
		renderError(c, http.StatusBadRequest, errs...)
		return
	}

	category, found := h.categoryByProvince(c.PostForm("province"))
	if !found {
		renderError(c, http.StatusNotFound, "No province found with this name.")
		return
	}

	course := models.GolfPOI{
		CourseName:      courseName,
		CourseDesc:      courseDesc,
		CategoryID:      &category.ID,
		RelatedImages:   []string{},
		Location:        location,
		LastUpdatedByID: &user.ID,
	}

	if err := h.db.Create(&course).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "create", Entity: "course", EntityID: &course.ID})

	c.Redirect(http.StatusFound, "/report")
}

// Course shows a single course with its hosted images and the current
// weather at its coordinates.
func (h *CourseWebHandler) Course(c *gin.Context) {
	course, ok := h.loadCourseWeb(c, c.Param("courseId"))
	if !ok {
		return
	}

	images, err := h.images.List(c.Request.Context(), course.RelatedImages)
	if err != nil {
		images = []imagestore.Image{}
	}

	conditions := weather.Conditions{}
	if len(course.Location.Coordinates) == 2 {
		lon := strconv.FormatFloat(course.Location.Coordinates[0], 'f', -1, 64)
		lat := strconv.FormatFloat(course.Location.Coordinates[1], 'f', -1, 64)
		conditions = h.weather.Current(c.Request.Context(), lat, lon)
	}

	c.HTML(http.StatusOK, "course.tmpl", gin.H{
		"Title":   course.CourseName,
		"Course":  course,
		"Images":  images,
		"Weather": conditions,
	})
}

func (h *CourseWebHandler) CourseUpdate(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	course, ok := h.loadCourseWeb(c, c.Param("courseId"))
	if !ok {
		return
	}

	courseName := validators.Sanitize(c.PostForm("courseName"))
	courseDesc := validators.Sanitize(c.PostForm("courseDesc"))
	location, locErr := parseLocationForm(c)

	if locErr != "" {
		renderError(c, http.StatusBadRequest, locErr)
		return
	}

	if errs := validators.ValidateCourse(courseName, courseDesc, location); len(errs) > 0 {
		renderError(c, http.StatusBadRequest, errs...)
		return
	}

	if province := c.PostForm("province"); province != "" {
		category, found := h.categoryByProvince(province)
		if !found {
			renderError(c, http.StatusNotFound, "No province found with this name.")
			return
		}
		course.CategoryID = &category.ID
	}

	course.CourseName = courseName
	course.CourseDesc = courseDesc
	course.Location = location
	course.LastUpdatedByID = &user.ID

	if err := h.db.Save(course).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error updating course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "update", Entity: "course", EntityID: &course.ID})

	c.Redirect(http.StatusFound, "/report")
}

func (h *CourseWebHandler) DeleteCourse(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	id, idOK := parseID(c.Param("courseId"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No course with this id.")
		return
	}

	if err := h.db.Delete(&models.GolfPOI{}, id).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error deleting course.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "delete", Entity: "course", EntityID: &id})

	c.Redirect(http.StatusFound, "/report")
}

func (h *CourseWebHandler) AddImage(c *gin.Context) {
	course, ok := h.loadCourseWeb(c, c.Param("courseId"))
	if !ok {
		return
	}

	images, err := h.images.List(c.Request.Context(), course.RelatedImages)
	if err != nil {
		images = []imagestore.Image{}
	}

	c.HTML(http.StatusOK, "addimage.tmpl", gin.H{
		"Title":  "Course images",
		"Course": course,
		"Images": images,
	})
}

func (h *CourseWebHandler) UploadFile(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	course, ok := h.loadCourseWeb(c, c.Param("id"))
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("imagefile")
	if err != nil {
		renderError(c, http.StatusBadRequest, "No image found to upload.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		renderError(c, http.StatusBadRequest, "No image found to upload.")
		return
	}

	publicID, err := h.images.Upload(c.Request.Context(), data)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Error uploading image.")
		return
	}

	course.RelatedImages = append(course.RelatedImages, publicID)
	course.LastUpdatedByID = &user.ID
	if err := h.db.Save(course).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error uploading image.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "upload_image", Entity: "course", EntityID: &course.ID})

	c.Redirect(http.StatusFound, "/addImage/"+c.Param("id"))
}

func (h *CourseWebHandler) DeleteImage(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	imageID := c.Param("id")

	if err := h.images.Delete(c.Request.Context(), imageID); err != nil {
		renderError(c, http.StatusInternalServerError, "Error deleting image.")
		return
	}

	course, ok := h.loadCourseWeb(c, c.Param("courseId"))
	if !ok {
		return
	}

	course.RelatedImages = removeImage(course.RelatedImages, imageID)
	course.LastUpdatedByID = &user.ID
	if err := h.db.Save(course).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error deleting image.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "delete_image", Entity: "course", EntityID: &course.ID})

	c.Redirect(http.StatusFound, "/addImage/"+c.Param("courseId"))
}

func (h *CourseWebHandler) ShowCategory(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var categories []models.LocationCategory
	if err := h.db.Preload("LastUpdatedBy").Order("province ASC").Find(&categories).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error listing categories.")
		return
	}

	c.HTML(http.StatusOK, "category.tmpl", gin.H{
		"Title":      "Manage provinces",
		"Categories": categories,
		"AdminUser":  user.AdminUser,
	})
}

func (h *CourseWebHandler) UpdateCategory(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	province := strings.TrimSpace(c.PostForm("province"))
	if errs := validators.ValidateCategory(province); len(errs) > 0 {
		renderError(c, http.StatusBadRequest, errs...)
		return
	}

	var counties []string
	for _, county := range strings.Split(c.PostForm("validCounties"), ",") {
		if county = strings.TrimSpace(county); county != "" {
			counties = append(counties, county)
		}
	}
	if counties == nil {
		counties = []string{}
	}

	category := models.LocationCategory{
		Province:        province,
		ValidCounties:   counties,
		LastUpdatedByID: &user.ID,
	}

	if err := h.db.Create(&category).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error creating category.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "create", Entity: "category", EntityID: &category.ID})

	c.Redirect(http.StatusFound, "/category")
}

func (h *CourseWebHandler) DeleteCategory(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	id, idOK := parseID(c.Param("categoryId"))
	if !idOK {
		renderError(c, http.StatusNotFound, "No category with this id.")
		return
	}

	if err := categoryDeletable(h.db, id); err != nil {
		if httperr.IsBusiness(err, "category_in_use") {
			renderError(c, http.StatusBadRequest, "Category is still referenced by courses.")
			return
		}
		renderError(c, http.StatusInternalServerError, "Error deleting category.")
		return
	}

	if err := h.db.Delete(&models.LocationCategory{}, id).Error; err != nil {
		renderError(c, http.StatusInternalServerError, "Error deleting category.")
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "delete", Entity: "category", EntityID: &id})

	c.Redirect(http.StatusFound, "/category")
}

// --------- Internal ---------

func (h *CourseWebHandler) sessionUser(c *gin.Context) (*models.User, bool) {
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

func (h *CourseWebHandler) loadCourseWeb(c *gin.Context, param string) (*models.GolfPOI, bool) {
	id, ok := parseID(param)
	if !ok {
		renderError(c, http.StatusNotFound, "No course with this id.")
		return nil, false
	}

	var course models.GolfPOI
	if err := h.db.Preload("LastUpdatedBy").Preload("Category").First(&course, id).Error; err != nil {
		renderError(c, http.StatusNotFound, "No course with this id.")
		return nil, false
	}

	return &course, true
}

func (h *CourseWebHandler) categoryByProvince(province string) (*models.LocationCategory, bool) {
	var category models.LocationCategory
	if err := h.db.Where("province = ?", strings.TrimSpace(province)).First(&category).Error; err != nil {
		return nil, false
	}
	return &category, true
}

// parseLocationForm reads longitude/latitude form fields into a GeoJSON
// point. Bounds checking happens in the validators.
func parseLocationForm(c *gin.Context) (models.GeoPoint, string) {
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(c.PostForm("longitude")), 64)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.PostForm("latitude")), 64)
	if lonErr != nil || latErr != nil {
		return models.GeoPoint{}, "Longitude and latitude must be numbers."
	}

	return models.GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}, ""
}
