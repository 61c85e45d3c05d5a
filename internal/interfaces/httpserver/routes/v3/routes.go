package v3

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// Routes holds the v3 route configuration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes creates a new v3 routes instance.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{handlers: handlerProvider}
}

// Register registers the multilingual glossary and style rule APIs behind authMiddleware.
func (r *Routes) Register(api *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	v3 := api.Group("/v3")
	if authMiddleware != nil {
		v3.Use(authMiddleware)
	}
	RegisterGlossaryRoutes(v3, r.handlers.Glossary)
	RegisterStyleRuleRoutes(v3, r.handlers.StyleRule)
}

// RegisterGlossaryRoutes registers glossary and dictionary management.
func RegisterGlossaryRoutes(router gin.IRoutes, handler *handlers.GlossaryHandler) {
	router.POST("/glossaries", createGlossary(handler))
	router.GET("/glossaries", listGlossaries(handler))
	router.GET("/glossaries/:glossary_id", getGlossary(handler))
	router.PATCH("/glossaries/:glossary_id", patchGlossary(handler))
	router.DELETE("/glossaries/:glossary_id", deleteGlossary(handler))
	router.GET("/glossaries/:glossary_id/entries", glossaryEntries(handler))
	router.PUT("/glossaries/:glossary_id/dictionaries", putDictionary(handler))
	router.DELETE("/glossaries/:glossary_id/dictionaries", deleteDictionary(handler))
}

func invalidBody(c *gin.Context) {
	responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Invalid request body")
}

func createGlossary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := requests.BindGlossary(c)
		if err != nil {
			invalidBody(c)
			return
		}
		info, err := handler.Create(c.Request.Context(), middlewares.GetAccount(c), req)
		if err != nil {
			responses.HandleError(c, err, "failed to create glossary")
			return
		}
		c.JSON(http.StatusCreated, responses.NewGlossaryResponse(info))
	}
}

func listGlossaries(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := handler.List(c.Request.Context(), middlewares.GetAccount(c))
		resp := responses.GlossaryListResponse{Glossaries: make([]responses.GlossaryResponse, 0, len(infos))}
		for _, info := range infos {
			resp.Glossaries = append(resp.Glossaries, responses.NewGlossaryResponse(info))
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
		c.JSON(http.StatusOK, responses.NewGlossaryResponse(info))
	}
}

func patchGlossary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := requests.BindGlossary(c)
		if err != nil {
			invalidBody(c)
			return
		}
		info, err := handler.Patch(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"), req)
		if err != nil {
			responses.HandleError(c, err, "failed to update glossary")
			return
		}
		c.JSON(http.StatusOK, responses.NewGlossaryResponse(info))
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

func glossaryEntries(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sourceLang, targetLang := c.Query("source_lang"), c.Query("target_lang")
		if sourceLang == "" || targetLang == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Source and target language for dictionary are required")
			return
		}
		d, err := handler.Entries(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"), sourceLang, targetLang)
		if err != nil {
			responses.HandleError(c, err, "failed to get glossary entries")
			return
		}
		c.JSON(http.StatusOK, responses.NewGlossaryEntriesResponse(sourceLang, targetLang, d))
	}
}

func putDictionary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := requests.BindDictionary(c)
		if err != nil {
			invalidBody(c)
			return
		}
		info, err := handler.PutDictionary(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"), d)
		if err != nil {
			responses.HandleError(c, err, "failed to update dictionary")
			return
		}
		c.JSON(http.StatusOK, responses.NewDictionaryResponse(info))
	}
}

func deleteDictionary(handler *handlers.GlossaryHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sourceLang, targetLang := c.Query("source_lang"), c.Query("target_lang")
		if err := handler.RemoveDictionary(c.Request.Context(), middlewares.GetAccount(c), c.Param("glossary_id"), sourceLang, targetLang); err != nil {
			responses.HandleError(c, err, "failed to delete dictionary")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
