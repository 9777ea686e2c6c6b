package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError writes a JSON error body and records it on the gin error
// stack so the error handler middleware can see what was already sent.
func AbortWithError(c *gin.Context, status int, msg string, detail ...any) {
	resp := Response{Status: status}
	resp.Error.Message = msg
	if len(detail) > 0 {
		resp.Detail = detail[0]
	}

	_ = c.Error(gin.Error{
		Err:  errors.New(msg),
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
