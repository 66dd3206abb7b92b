package util

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
	// Fields maps field names to validation messages for 400 responses
	Fields map[string]string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func BuildDbHTTPErr(err error) *HTTPError {
	log.Println("database error occurred", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func BuildValidationHTTPErr(fields map[string]string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	}
}

var (
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
	NotFoundHTTPErr = HTTPError{
		Message: "not found",
		Status:  http.StatusNotFound,
	}
)

type HandlerOpts struct {
}

type Handler = func(c *gin.Context) (interface{}, *HTTPError)

/*
	HandlerWrapper converts a Handler into a gin.HandlerFunc that writes
	the standard response envelope. Handlers return data or an HTTPError;
	they never write to the context themselves.
*/
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			res := gin.H{
				"success": false,
				"message": httpErr.Message,
			}
			if httpErr.Fields != nil {
				res["fields"] = httpErr.Fields
			}
			c.JSON(httpErr.Status, res)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}
