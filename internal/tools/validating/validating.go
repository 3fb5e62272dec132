package validating

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// Register adds the custom tags used by the request params to gin's
// validator. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = engine.RegisterValidation("notblank", validators.NotBlank)
	})
}
