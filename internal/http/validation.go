package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNameOnce sync.Once

// registerTagNames makes validator report JSON field names instead of Go
// struct field names in its errors.
func registerTagNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON binds the request body into req and answers with a 400 carrying a
// field->message map when validation fails. Returns false if the request was
// already answered.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return false
	}
	return true
}

// fieldErrors converts a binding error into a field->message response body.
func fieldErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": err.Error()}
	}
	out := gin.H{}
	for _, fe := range verrs {
		out[fe.Field()] = messageForTag(fe)
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "url":
		return "Enter a valid URL."
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
