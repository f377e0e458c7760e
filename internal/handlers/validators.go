package handlers

import (
	"sync"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the currency and symbol binding tags to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeCurrency(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeSymbol(fl.Field().String())
			return err == nil
		})
	})
}
