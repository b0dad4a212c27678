package config

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	itemIDPattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("item_id", func(fl validator.FieldLevel) bool {
			return itemIDPattern.MatchString(fl.Field().String())
		})

		// tui_color accepts #RRGGBB hex values or ANSI 256 palette indices,
		// the two forms lipgloss.Color understands.
		_ = v.RegisterValidation("tui_color", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			if hexColorPattern.MatchString(value) {
				return true
			}
			n, err := strconv.Atoi(value)
			return err == nil && n >= 0 && n <= 255
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for use outside the
// config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
