package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		Validate = v
	})
}
