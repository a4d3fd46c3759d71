package validators

const msgProvince = "Province is required"

func ValidateCategory(province string) []string {
	var errs []string
	if province == "" {
		errs = append(errs, msgProvince)
	}
	return errs
}
