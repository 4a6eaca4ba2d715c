package verifier

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

func getValidator() *validator.Validate {
	validate := validator.New()

	if err := validate.RegisterValidation("aleo_address", func(fl validator.FieldLevel) bool {
		_, err := account.ParseAddress(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register aleo_address validation: %v", err))
	}
	if err := validate.RegisterValidation("aleo_view_key", func(fl validator.FieldLevel) bool {
		vk, err := account.ParseViewKey(fl.Field().String())
		if err != nil {
			return false
		}
		vk.Zero()
		return true
	}); err != nil {
		panic(fmt.Sprintf("failed to register aleo_view_key validation: %v", err))
	}
	return validate
}
