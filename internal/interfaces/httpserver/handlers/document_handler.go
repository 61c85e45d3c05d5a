package handlers

import (
	"context"
	"io"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/domain/document"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/requests"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

// Upload is a received document file.
type Upload struct {
	Filename string
	Body     io.Reader
}

// DocumentHandler serves document upload, status and download.
type DocumentHandler struct {
	service *document.Service
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(service *document.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

func timing(sess *session.Session) document.Timing {
	return document.Timing{QueueDelay: sess.QueueDelay(), TranslateDelay: sess.TranslateDelay()}
}

// Create stores an upload for acct. upload is nil when no file was sent.
func (h *DocumentHandler) Create(ctx context.Context, acct *account.Account, values requests.Values, upload *Upload) (*document.Document, error) {
	req := document.CreateRequest{
		Owner:        acct.Credential,
		Usage:        acct.Usage,
		TargetLang:   values.Get("target_lang"),
		SourceLang:   values.Get("source_lang"),
		GlossaryID:   values.Get("glossary_id"),
		OutputFormat: values.Get("output_format"),
	}
	if upload != nil {
		req.Filename, req.Body = upload.Filename, upload.Body
	}
	return h.service.Create(ctx, req)
}

// Dispatch starts the translation of doc under sess.
func (h *DocumentHandler) Dispatch(ctx context.Context, doc *document.Document, sess *session.Session) {
	h.service.Dispatch(ctx, doc, sess)
}

// Status reports the status of an owned document as seen by sess.
func (h *DocumentHandler) Status(ctx context.Context, acct *account.Account, sess *session.Session, id, key string) (responses.DocumentStatusResponse, error) {
	snap, err := h.service.Status(ctx, id, key, acct.Credential, timing(sess))
	if err != nil {
		return responses.DocumentStatusResponse{}, err
	}
	return responses.NewDocumentStatusResponse(snap), nil
}

// Download opens the result of a done document.
func (h *DocumentHandler) Download(ctx context.Context, acct *account.Account, sess *session.Session, id, key string) (*document.Document, *document.Result, error) {
	return h.service.Download(ctx, id, key, acct.Credential, timing(sess))
}

// Delivered removes a document whose result has been sent.
func (h *DocumentHandler) Delivered(ctx context.Context, doc *document.Document) {
	h.service.Remove(ctx, doc)
}
