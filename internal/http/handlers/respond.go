package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/birthdays/internal/apperror"
)

// RespondError writes err as {"error": <public message>} with the status of
// its kind. Details of unexpected failures are logged here and never sent.
func RespondError(ctx *gin.Context, err error) {
	appErr := apperror.As(err)

	if appErr.Kind == apperror.KindOther {
		slog.Default().ErrorContext(ctx.Request.Context(), "request failed",
			"method", ctx.Request.Method,
			"route", ctx.FullPath(),
			"err", appErr.Error(),
		)
	}

	ctx.AbortWithStatusJSON(appErr.Status(), gin.H{"error": appErr.Public()})
}

func RespondNotFound(ctx *gin.Context) {
	RespondError(ctx, apperror.NotFound())
}
