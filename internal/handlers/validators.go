package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// RegisterCustomValidators installs the `accountcode` binding rule into gin's
// validator engine. Account codes follow the Japanese standard chart layout,
// so the domain constructor is the single source of truth for the format.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			_, err := domain.NewAccountCode(fl.Field().String())
			return err == nil
		})
	}
}
