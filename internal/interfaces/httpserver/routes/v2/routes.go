package v2

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
)

// Routes holds the v2 route configuration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes creates a new v2 routes instance.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{handlers: handlerProvider}
}

// Register registers all v2 routes on api behind authMiddleware.
func (r *Routes) Register(api *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	v2 := api.Group("/v2")
	if authMiddleware != nil {
		v2.Use(authMiddleware)
	}
	RegisterTranslateRoutes(v2, r.handlers.Translation)
	RegisterDocumentRoutes(v2, r.handlers.Document)
	RegisterGlossaryRoutes(v2, r.handlers.Glossary, r.handlers.Translation)
}

// getAndPost registers h for GET and POST, as the API accepts both.
func getAndPost(router gin.IRoutes, path string, h gin.HandlerFunc) {
	router.GET(path, h)
	router.POST(path, h)
}
