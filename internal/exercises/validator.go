package exercises

import (
	"github.com/2beens/fittrack/pkg"

	"github.com/go-playground/validator/v10"
)

// NewValidator extends the shared validator with the "category" tag.
func NewValidator() *validator.Validate {
	v := pkg.NewValidator()
	if err := v.RegisterValidation("category", validateCategory); err != nil {
		panic(err)
	}
	return v
}

func validateCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}
