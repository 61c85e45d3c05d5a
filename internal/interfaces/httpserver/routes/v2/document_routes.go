package v2

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// RegisterDocumentRoutes registers document upload, status and download.
func RegisterDocumentRoutes(router gin.IRoutes, handler *handlers.DocumentHandler) {
	router.POST("/document", uploadDocument(handler))
	getAndPost(router, "/document/:document_id", documentStatus(handler))
	getAndPost(router, "/document/:document_id/result", downloadDocument(handler))
}

func uploadDocument(handler *handlers.DocumentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		acct := middlewares.GetAccount(c)

		var upload *handlers.Upload
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Invalid file data.")
				return
			}
			defer f.Close()
			upload = &handlers.Upload{Filename: fh.Filename, Body: f}
		}

		doc, err := handler.Create(c.Request.Context(), acct, values, upload)
		if err != nil {
			responses.HandleError(c, err, "failed to store document")
			return
		}

		c.JSON(http.StatusOK, responses.DocumentHandleResponse{DocumentID: doc.ID, DocumentKey: doc.Key})
		c.Writer.Flush()

		// The job outlives the request.
		handler.Dispatch(context.WithoutCancel(c.Request.Context()), doc, middlewares.GetSession(c))
	}
}

func documentStatus(handler *handlers.DocumentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		resp, err := handler.Status(c.Request.Context(), middlewares.GetAccount(c), middlewares.GetSession(c),
			c.Param("document_id"), values.Get("document_key"))
		if err != nil {
			responses.HandleError(c, err, "failed to get document status")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func downloadDocument(handler *handlers.DocumentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, ok := parseValues(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		doc, result, err := handler.Download(ctx, middlewares.GetAccount(c), middlewares.GetSession(c),
			c.Param("document_id"), values.Get("document_key"))
		if err != nil {
			responses.HandleError(c, err, "failed to download document")
			return
		}

		c.DataFromReader(http.StatusOK, result.Size, result.ContentType, result.Body, map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", result.Filename),
		})
		_ = result.Body.Close()
		if c.Request.Context().Err() == nil {
			handler.Delivered(context.WithoutCancel(ctx), doc)
		}
	}
}
