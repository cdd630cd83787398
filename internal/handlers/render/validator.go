package render

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", validateSlug)
	v.RegisterTagNameFunc(useJSONTagNames)
	return v
}

// Report field errors on the json tag name instead of the struct field name
func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Slugs become URL path segments of product and region pages, so only
// lowercase kebab-case is accepted
func validateSlug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}
