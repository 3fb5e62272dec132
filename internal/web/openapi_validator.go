package web

import (
	"errors"
	"net/http"

	"bitbucket.org/crgw/rental-hub/internal/tools/responding"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

// OpenapiValidator checks requests against the api definition. Routes that
// the definition does not describe, like /status and pprof, pass through.
func OpenapiValidator(content []byte) (gin.HandlerFunc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(content)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return
			}
			responding.HandleError(c, http.StatusBadRequest, "Failed to match api definition", err)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}

		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Request does not match api definition", err)
			return
		}
	}, nil
}
