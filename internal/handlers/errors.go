// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// writeError maps the catalog error taxonomy onto HTTP responses. Handlers
// never inspect error strings; classification happens here and nowhere else.
func writeError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case catalogerr.IsValidation(err):
		utils.BadRequestResponse(c, err.Error(), nil)
	case catalogerr.IsConflict(err):
		utils.ConflictResponse(c, err.Error())
	case catalogerr.IsPartialUpload(err):
		utils.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_FAILED", err.Error(), nil)
	case catalogerr.IsDependency(err):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "DEPENDENCY_ERROR", "a backing service is unavailable", nil)
	default:
		utils.InternalErrorResponse(c, "internal server error")
	}
}

// bindJSON binds the request body and writes the error response itself on
// failure, surfacing field-level validation details when available.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	utils.BadRequestResponse(c, "invalid request payload", nil)
	return false
}

// sessionFromContext rebuilds the operator session placed there by the auth
// middleware. Routes behind AuthRequired always have one.
func sessionFromContext(c *gin.Context) (services.Session, bool) {
	operatorID, username, ok := utils.GetSessionFromContext(c)
	if !ok {
		return services.Session{}, false
	}
	id, err := uuid.Parse(operatorID)
	if err != nil {
		return services.Session{}, false
	}
	return services.Session{OperatorID: id, Username: username}, true
}
