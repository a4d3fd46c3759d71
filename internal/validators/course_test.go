package validators

import (
	"testing"

	"github.com/glencullen/golfpoi/internal/models"
)

func point(lon, lat float64) models.GeoPoint {
	return models.GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

func TestValidateCourse_Valid(t *testing.T) {
	t.Parallel()

	errs := ValidateCourse("Sample Course", "A long enough description.", point(-6.25, 53.35))
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateCourse_NameRules(t *testing.T) {
	t.Parallel()

	cases := []string{
		"lowercase start",
		"X",
		"Bad<chars>",
	}
	for _, name := range cases {
		if errs := ValidateCourse(name, "A long enough description.", point(0, 0)); len(errs) == 0 {
			t.Fatalf("expected course name %q to be rejected", name)
		}
	}
}

func TestValidateCourse_DescriptionTooShort(t *testing.T) {
	t.Parallel()

	if errs := ValidateCourse("Sample Course", "Too short", point(0, 0)); len(errs) == 0 {
		t.Fatalf("expected short description to be rejected")
	}
}

func TestValidateCourse_CoordinateBounds(t *testing.T) {
	t.Parallel()

	cases := []models.GeoPoint{
		point(-181, 0),
		point(181, 0),
		point(0, -91),
		point(0, 91),
		{Type: "Point", Coordinates: []float64{1}},
		{Type: "Point", Coordinates: []float64{1, 2, 3}},
		{Type: "Point"},
	}
	for _, loc := range cases {
		if errs := ValidateCourse("Sample Course", "A long enough description.", loc); len(errs) == 0 {
			t.Fatalf("expected coordinates %v to be rejected", loc.Coordinates)
		}
	}

	// Latitude may legitimately exceed 90 in the longitude slot.
	if errs := ValidateCourse("Sample Course", "A long enough description.", point(120, 45)); len(errs) != 0 {
		t.Fatalf("expected [120, 45] to be accepted, got %v", errs)
	}
}

func TestValidateCourse_TypeMustBePoint(t *testing.T) {
	t.Parallel()

	loc := models.GeoPoint{Type: "Polygon", Coordinates: []float64{0, 0}}
	if errs := ValidateCourse("Sample Course", "A long enough description.", loc); len(errs) == 0 {
		t.Fatalf("expected non-Point type to be rejected")
	}
}

func TestSanitize_StripsMarkup(t *testing.T) {
	t.Parallel()

	got := Sanitize(`<script>alert(1)</script>Sample <b onclick="x()">Course</b>`)
	if got != "Sample Course" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
}
