package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-graphscene/pkg/logging"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks struct tags first, then rules spanning several fields
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return NewChecker("config").
		Custom("logging.level", func() error {
			if _, ok := logging.LookupLevel(c.Logging.Level); !ok {
				return fmt.Errorf("unknown level %q", c.Logging.Level)
			}
			return nil
		}).
		Custom("output.path", func() error {
			if c.Output.Path != "" && c.Output.Path == c.Input {
				return errors.New("must differ from input")
			}
			return nil
		}).
		When(c.Upload.Enabled(), func(ch *Checker) {
			ch.Required("upload.key", c.Upload.Key).
				Required("upload.region", c.Upload.Region).
				Custom("upload.secret_access_key", func() error {
					if (c.Upload.AccessKeyID == "") != (c.Upload.SecretAccessKey == "") {
						return errors.New("access_key_id and secret_access_key must be set together")
					}
					return nil
				})
		}).
		Validate()
}

// formatValidationError reports the first failure as "field: message"
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "url":
			return fmt.Errorf("%s: must be a URL", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
