package registry

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// validate is a package-wide singleton validator instance, grounded on
// the teacher's validation.GetValidator() sync.Once pattern — struct tag
// validators are safe for concurrent use once constructed, so one
// instance is shared across every RoleSpec validation call.
var (
	validateOnce sync.Once
	validateInst *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}
