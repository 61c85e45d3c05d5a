package v3

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

// RegisterStyleRuleRoutes registers style rule management.
func RegisterStyleRuleRoutes(router gin.IRoutes, handler *handlers.StyleRuleHandler) {
	router.POST("/style_rules", createStyleRule(handler))
	router.GET("/style_rules", listStyleRules(handler))
	router.GET("/style_rules/:style_id", getStyleRule(handler))
	router.DELETE("/style_rules/:style_id", deleteStyleRule(handler))
}

func createStyleRule(handler *handlers.StyleRuleHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := requests.BindStyleRule(c)
		if err != nil {
			invalidBody(c)
			return
		}
		info, err := handler.Create(c.Request.Context(), middlewares.GetAccount(c), req)
		if err != nil {
			responses.HandleError(c, err, "failed to create style rule")
			return
		}
		c.JSON(http.StatusCreated, responses.NewStyleRuleResponse(info))
	}
}

func listStyleRules(handler *handlers.StyleRuleHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := requests.Parse(c)
		if err != nil {
			invalidBody(c)
			return
		}
		infos, err := handler.List(c.Request.Context(), middlewares.GetAccount(c), values)
		if err != nil {
			responses.HandleError(c, err, "failed to list style rules")
			return
		}
		resp := responses.StyleRuleListResponse{StyleRules: make([]responses.StyleRuleResponse, 0, len(infos))}
		for _, info := range infos {
			resp.StyleRules = append(resp.StyleRules, responses.NewStyleRuleResponse(info))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getStyleRule(handler *handlers.StyleRuleHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := handler.Info(c.Request.Context(), middlewares.GetAccount(c), c.Param("style_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get style rule")
			return
		}
		c.JSON(http.StatusOK, responses.NewStyleRuleResponse(info))
	}
}

func deleteStyleRule(handler *handlers.StyleRuleHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler.Delete(c.Request.Context(), middlewares.GetAccount(c), c.Param("style_id")); err != nil {
			responses.HandleError(c, err, "failed to delete style rule")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
