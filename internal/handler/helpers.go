package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/middleware"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error to a response. Validation failures carry
// their message; anything else is logged and hidden.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Err(err).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, apierror.New(what+" not found"))
}

// caller returns the authenticated user's id and role.
func caller(c *gin.Context) (string, model.Role) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return "", ""
	}
	return claims.UserID, claims.Role
}

// callerName prefers the display name and falls back to the user id.
func callerName(c *gin.Context) string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return ""
	}
	if claims.Name != "" {
		return claims.Name
	}
	return claims.UserID
}
