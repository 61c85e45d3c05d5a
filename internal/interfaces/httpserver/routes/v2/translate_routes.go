package v2

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// RegisterTranslateRoutes registers text translation, languages and usage.
func RegisterTranslateRoutes(router gin.IRoutes, handler *handlers.TranslationHandler) {
	getAndPost(router, "/languages", listLanguages(handler))
	getAndPost(router, "/usage", usage(handler))
	getAndPost(router, "/translate", translate(handler))
	router.POST("/write/rephrase", rephrase(handler))
}

func parseValues(c *gin.Context) (requests.Values, bool) {
	values, err := requests.Parse(c)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Invalid request body")
		return nil, false
	}
	return values, true
}

func listLanguages(handler *handlers.TranslationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		langs, err := handler.Languages(values.Get("type"))
		if err != nil {
			responses.HandleError(c, err, "failed to list languages")
			return
		}
		c.JSON(http.StatusOK, langs)
	}
}

func usage(handler *handlers.TranslationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.Usage(middlewares.GetAccount(c)))
	}
}

func translate(handler *handlers.TranslationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		resp, err := handler.Translate(c.Request.Context(), middlewares.GetAccount(c), middlewares.GetSession(c), values)
		if err != nil {
			responses.HandleError(c, err, "failed to translate")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func rephrase(handler *handlers.TranslationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		resp, err := handler.Rephrase(c.Request.Context(), middlewares.GetAccount(c), middlewares.GetSession(c), values)
		if err != nil {
			responses.HandleError(c, err, "failed to rephrase")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
