package req

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// IsEmail проверяет синтаксис адреса электронной почты.
func IsEmail(email string) bool {
	return instance().Var(email, "required,email") == nil
}
