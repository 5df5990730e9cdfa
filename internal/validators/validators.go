package validators

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var custom = map[string]validator.Func{
	"yyyymmdd": layout("2006-01-02"),
	"hhmm":     layout("15:04"),
}

// layout accepts empty values; pair with `required` when the field is mandatory.
func layout(l string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(l, s)
		return err == nil
	}
}

// Register installs the custom tags on v and reports fields by their json name.
func Register(v *validator.Validate) error {
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return nil
}

// RegisterGin installs the custom tags on gin's binding engine.
func RegisterGin() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return Register(v)
	}
	return nil
}

// FirstField returns the json name and tag of the first failed field.
func FirstField(err error) (field, tag string, ok bool) {
	errs, isValidation := err.(validator.ValidationErrors)
	if !isValidation || len(errs) == 0 {
		return "", "", false
	}
	return errs[0].Field(), errs[0].Tag(), true
}
