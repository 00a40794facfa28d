package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/audioscribe/errors"
)

// RespondWithError writes err as the error envelope. An *apperrors.AppError
// anywhere in the chain decides the status; anything else becomes a generic
// 500 whose cause stays server-side.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends data as a 200 JSON body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
