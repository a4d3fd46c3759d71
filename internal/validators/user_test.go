package validators

import (
	"strings"
	"testing"
)

func TestValidateUser_Valid(t *testing.T) {
	t.Parallel()

	errs := ValidateUser("Homer", "Simpson", "homer@simpson.com", "Secret#123", true)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateUser_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	errs := ValidateUser("homer", "simpson", "not-an-email", "weak", true)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "First Name") {
		t.Fatalf("first error should be the first name rule, got %q", errs[0])
	}
}

func TestValidateUser_PasswordRules(t *testing.T) {
	t.Parallel()

	bad := []string{
		"Aa1#",                      // too short
		strings.Repeat("Aa1#", 10),  // too long
		"alllower#1",                // no upper
		"ALLUPPER#1",                // no lower
		"NoDigitsHere#",             // no digit
		"NoSpecial123Aa",            // no special
	}
	for _, p := range bad {
		if errs := ValidateUser("Homer", "Simpson", "h@s.com", p, true); len(errs) == 0 {
			t.Fatalf("expected password %q to be rejected", p)
		}
	}
}

func TestValidateUser_PasswordOptionalOnUpdate(t *testing.T) {
	t.Parallel()

	if errs := ValidateUser("Homer", "Simpson", "h@s.com", "", false); len(errs) != 0 {
		t.Fatalf("blank password should be allowed when not required, got %v", errs)
	}
	if errs := ValidateUser("Homer", "Simpson", "h@s.com", "", true); len(errs) == 0 {
		t.Fatalf("blank password should fail when required")
	}
}
