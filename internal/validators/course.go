package validators

import (
	"regexp"

	"github.com/glencullen/golfpoi/internal/models"
)

var (
	courseNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9' ,."\-]{1,100}$`)
	courseDescRe = regexp.MustCompile(`(?s)^[A-Z][A-Za-z0-9' ,."\s\-]{10,}$`)
)

const (
	msgCourseName = "Course Name must start with a capital, may only contain letters, numbers and - ' , \" . or space and must be between 2 and 101 in length"
	msgCourseDesc = "Course Description must start with a capital, may only contain letters, numbers and - ' , \" . or space and must be at least 11 in length"
	msgLocType    = "Location type must be Point"
	msgCoords     = "Location coordinates must be [longitude, latitude] with longitude between -180 and 180 and latitude between -90 and 90"
)

// ValidateCourse checks a sanitized course payload. Coordinates follow the
// GeoJSON order: [longitude, latitude].
func ValidateCourse(courseName, courseDesc string, location models.GeoPoint) []string {
	var errs []string

	if !courseNameRe.MatchString(courseName) {
		errs = append(errs, msgCourseName)
	}
	if !courseDescRe.MatchString(courseDesc) {
		errs = append(errs, msgCourseDesc)
	}
	if location.Type != "Point" {
		errs = append(errs, msgLocType)
	}
	if !validCoordinates(location.Coordinates) {
		errs = append(errs, msgCoords)
	}

	return errs
}

func validCoordinates(coords []float64) bool {
	if len(coords) != 2 {
		return false
	}
	lon, lat := coords[0], coords[1]
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
