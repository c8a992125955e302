package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smalltable/catering-app/services"
	"github.com/smalltable/catering-app/utils"
)

var ErrNoPermission = errors.New("you do not have permission to perform this action")

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// NotFound -> 404, ValidationError -> 400, InvalidState -> 409.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.RespondError(c, http.StatusNotFound, err)
	case services.IsValidation(err):
		utils.RespondError(c, http.StatusBadRequest, err)
	case services.IsInvalidState(err):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
