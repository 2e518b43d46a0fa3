package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/repository"
	"microblog/internal/transport/http/response"
	"microblog/internal/validation"
)

// writeDomainError maps the core error taxonomy to HTTP statuses:
// ValidationError 422, DuplicateKey 409, NotFound 404, everything else
// (including StorageError) 500.
func writeDomainError(c *gin.Context, err error, fallback string) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr)
	case errors.Is(err, repository.ErrDuplicateKey):
		response.Error(c, http.StatusConflict, response.CodeDuplicateKey, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
