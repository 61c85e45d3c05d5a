package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// StatusQuotaExceeded is the non-standard status the translation API uses
// for exhausted quotas.
const StatusQuotaExceeded = 456

// StatusFor maps an error type to its HTTP status code.
func StatusFor(t platformerrors.ErrorType) int {
	switch t {
	case platformerrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case platformerrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case platformerrors.ErrorTypeForbidden:
		return http.StatusForbidden
	case platformerrors.ErrorTypeQuotaExceeded:
		return StatusQuotaExceeded
	case platformerrors.ErrorTypeNotImplemented, platformerrors.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	case platformerrors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err as a JSON error body with the mapped status. Errors
// outside the platform taxonomy are reported as internal without their text.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()

	perr := platformerrors.GetPlatformError(err)
	if perr == nil {
		perr = platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, platformerrors.ErrorTypeInternal, message, err)
	}
	platformerrors.LogError(logger, perr)

	body := ErrorResponse{Message: perr.Message, Detail: perr.Detail}
	if perr.Type == platformerrors.ErrorTypeInternal {
		body = ErrorResponse{Message: message}
	}
	c.AbortWithStatusJSON(StatusFor(perr.Type), body)
}

// HandleNewError writes a route-level error of the given type.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string) {
	HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil), message)
}
