package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/validation"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUnauthorized       = 40100
	CodeNotFound           = 40400
	CodeDuplicateKey       = 40900
	CodeValidationFailed   = 42200
	CodeInternalServer     = 50000
	CodeInvalidCredentials = 40101
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Code:    CodeOK,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// ValidationFailed renders a 422 carrying every violated field.
func ValidationFailed(c *gin.Context, verr *validation.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Data:    gin.H{"fields": verr.Fields},
	})
}
