package middleware

import (
	"net/http"
	"reflect"

	"bitbucket.org/crgw/rental-hub/internal/tools/responding"
	"bitbucket.org/crgw/rental-hub/internal/tools/validating"
	"github.com/gin-gonic/gin"
)

const (
	ParamsKey string = "params"
)

// PrepareParams binds the query string or JSON body into a fresh *T and
// stores it under ParamsKey.
func PrepareParams(val any) gin.HandlerFunc {
	value := reflect.ValueOf(val)
	if value.Kind() == reflect.Ptr {
		panic(`Bind struct can not be a pointer.`)
	}

	typ := value.Type()
	validating.Register()

	return func(ctx *gin.Context) {
		params := reflect.New(typ).Interface()

		err := ctx.ShouldBind(params)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}

		ctx.Set(ParamsKey, params)
	}
}
