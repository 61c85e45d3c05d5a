package v2

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/domain/glossary"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

// RegisterGlossaryRoutes registers the single-pair glossary API.
func RegisterGlossaryRoutes(router gin.IRoutes, handler *handlers.GlossaryHandler, languages *handlers.TranslationHandler) {
	getAndPost(router, "/glossary-language-pairs", glossaryLanguagePairs(languages))
	router.POST("/glossaries", createGlossary(handler))
	router.GET("/glossaries", listGlossaries(handler))
	router.GET("/glossaries/:glossary_id", getGlossary(handler))
	router.GET("/glossaries/:glossary_id/entries", glossaryEntries(handler))
	router.DELETE("/glossaries/:glossary_id", deleteGlossary(handler))
}

func glossaryLanguagePairs(handler *handlers.TranslationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.GlossaryLanguagePairs())
	}
}

func createGlossary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		info, err := handler.CreateSingle(c.Request.Context(), middlewares.GetAccount(c), values)
		if err != nil {
			responses.HandleError(c, err, "failed to create glossary")
			return
		}
		c.JSON(http.StatusCreated, responses.NewGlossaryV2Response(info))
	}
}

func listGlossaries(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := handler.List(c.Request.Context(), middlewares.GetAccount(c))
		resp := responses.GlossaryV2ListResponse{Glossaries: make([]responses.GlossaryV2Response, 0, len(infos))}
		for _, info := range infos {
			resp.Glossaries = append(resp.Glossaries, responses.NewGlossaryV2Response(info))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getGlossary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := handler.Info(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get glossary")
			return
		}
		c.JSON(http.StatusOK, responses.NewGlossaryV2Response(info))
	}
}

func glossaryEntries(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := handler.Entries(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"), "", "")
		if err != nil {
			responses.HandleError(c, err, "failed to get glossary entries")
			return
		}
		c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(glossary.EncodeTSV(d.Entries)))
	}
}

func deleteGlossary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler.Delete(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id")); err != nil {
			responses.HandleError(c, err, "failed to delete glossary")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
