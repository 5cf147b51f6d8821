// Package validator wires go-playground/validator into gin's binding
// machinery.
package validator

import (
	"reflect"
	"strings"
	"sync"

	validatorV10 "github.com/go-playground/validator/v10"
)

// CustomValidator implements gin binding.StructValidator backed by
// validator/v10, with JSON tag names reported in errors.
type CustomValidator struct {
	once     sync.Once
	Validate *validatorV10.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyInit()
	return v.Validate.Struct(obj)
}

func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.Validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.Validate = validatorV10.New()
		v.Validate.SetTagName("binding")
		v.Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
