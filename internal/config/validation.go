package config

import (
	stdErrors "errors"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report yaml key names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return v
}

// Validate checks the configuration and returns a validation error naming
// the first offending field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stdErrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.ConfigInvalid(fieldPath(fe), describe(fe))
		}
		return errors.InternalError("validate config", err)
	}

	content, err1 := filepath.Abs(c.ContentDir)
	output, err2 := filepath.Abs(c.OutputDir)
	if err1 == nil && err2 == nil && content == output {
		return errors.ConfigInvalid("output_dir", "must differ from content_dir")
	}
	return nil
}

// fieldPath turns "Config.site.base_url" into "site.base_url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "http_url":
		return "must be an absolute http(s) URL"
	case "nefield":
		return "must differ from content_dir"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "glob":
		return "is not a valid glob pattern"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
