package document

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/domain/quota"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/infrastructure/metrics"
	"github.com/janhq/translate-mock/internal/infrastructure/storage"
	"github.com/janhq/translate-mock/internal/infrastructure/store"
	"github.com/janhq/translate-mock/internal/utils/idgen"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
	"github.com/janhq/translate-mock/pkg/telemetry"
)

const (
	idLength  = 32
	keyLength = 64

	jobType = "document.translate"

	msgForcedFailure  = "Translation error triggered"
	msgSameLanguage   = "source and target language are equal"
	msgInternalFailed = "Internal error"
)

func sentinel(t platformerrors.ErrorType, message string) *platformerrors.PlatformError {
	return platformerrors.Sentinel(platformerrors.LayerDomain, t, message)
}

var (
	ErrDocumentNotFound  = sentinel(platformerrors.ErrorTypeNotFound, "Document not found")
	ErrNotReady          = sentinel(platformerrors.ErrorTypeUnavailable, "Document translation is not done")
	ErrMissingFile       = sentinel(platformerrors.ErrorTypeValidation, "Invalid file data.")
	ErrInvalidFileFormat = sentinel(platformerrors.ErrorTypeValidation, "Invalid file data.")
	ErrFormatNotImpl     = sentinel(platformerrors.ErrorTypeNotImplemented, "Mock server only implements document translation for .txt and .html files.")
	ErrOutputFormat      = sentinel(platformerrors.ErrorTypeValidation, "Value for 'output_format' not supported.")
	ErrTargetLang        = sentinel(platformerrors.ErrorTypeValidation, "Value for 'target_lang' not supported.")
	ErrSourceLang        = sentinel(platformerrors.ErrorTypeValidation, "Value for 'source_lang' not supported.")
	ErrSameLanguage      = sentinel(platformerrors.ErrorTypeValidation, "Source and target language must differ.")
	ErrGlossaryNeedsLang = sentinel(platformerrors.ErrorTypeValidation, "Use of a glossary requires the source_lang parameter to be specified")
	ErrQuotaExceeded     = sentinel(platformerrors.ErrorTypeQuotaExceeded, "Quota for this billing period has been exceeded.")
)

// Storage persists document artifacts.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader) (storage.Artifact, error)
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}

// Dispatcher runs one-shot background jobs.
type Dispatcher interface {
	Submit(jobType, id string, run func(context.Context) error) error
}

// GlossaryResolver resolves an owned glossary to a line lookup for a pair.
type GlossaryResolver interface {
	Lookup(ctx context.Context, id, owner, sourceLang, targetLang string) (language.Lookup, error)
}

// CreateRequest describes an upload.
type CreateRequest struct {
	Filename     string
	Body         io.Reader
	Owner        string
	Usage        *quota.Ledger
	TargetLang   string
	SourceLang   string
	GlossaryID   string
	OutputFormat string
}

// Result is a deliverable translation output.
type Result struct {
	Body        io.ReadCloser
	Size        int64
	Filename    string
	ContentType string
}

// Service owns document records and their artifacts.
type Service struct {
	documents  *store.ExpiringStore[string, *Document]
	artifacts  Storage
	glossaries GlossaryResolver
	catalog    *language.Catalog
	dispatcher Dispatcher
	sanitizer  *telemetry.Sanitizer
	clock      func() time.Time
	log        zerolog.Logger
}

// NewService creates a document service. Evicted documents lose their artifacts.
func NewService(catalog *language.Catalog, artifacts Storage, glossaries GlossaryResolver, dispatcher Dispatcher, sanitizer *telemetry.Sanitizer, opts store.Options, log zerolog.Logger) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &Service{
		artifacts:  artifacts,
		glossaries: glossaries,
		catalog:    catalog,
		dispatcher: dispatcher,
		sanitizer:  sanitizer,
		clock:      clock,
		log:        log.With().Str("component", "document-service").Logger(),
	}
	s.documents = store.NewExpiringStore[string, *Document]("documents", opts, func(id string, d *Document) {
		s.deleteArtifacts(context.Background(), d)
		s.log.Info().Str("document_id", id).Msg("document expired")
	}, log)
	return s
}

func (s *Service) deleteArtifacts(ctx context.Context, d *Document) {
	for _, key := range d.takeArtifacts() {
		if err := s.artifacts.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("document_id", d.ID).Str("artifact", key).Msg("artifact cleanup failed")
		}
	}
}

func (s *Service) validate(ctx context.Context, req *CreateRequest) (Format, Format, language.Lookup, error) {
	var none Format
	if req.Filename == "" || req.Body == nil {
		return none, none, nil, ErrMissingFile
	}
	format, ok := FormatForFilename(req.Filename)
	if !ok {
		return none, none, nil, ErrInvalidFileFormat
	}
	if !format.Implemented {
		return none, none, nil, ErrFormatNotImpl.WithDetail("extension " + format.Extension)
	}

	output := format
	if req.OutputFormat != "" {
		if output, ok = FormatForOutput(req.OutputFormat); !ok {
			return none, none, nil, ErrOutputFormat
		}
		if !output.Implemented {
			return none, none, nil, ErrFormatNotImpl.WithDetail("output format " + output.Extension)
		}
	}

	req.TargetLang = strings.ToUpper(req.TargetLang)
	req.SourceLang = strings.ToUpper(req.SourceLang)
	if !s.catalog.IsTargetLanguage(req.TargetLang) {
		return none, none, nil, ErrTargetLang
	}
	if !s.catalog.IsSourceLanguage(req.SourceLang) {
		return none, none, nil, ErrSourceLang
	}
	if req.SourceLang != "" && language.SameLanguage(req.SourceLang, req.TargetLang) {
		return none, none, nil, ErrSameLanguage
	}

	var lookup language.Lookup
	if req.GlossaryID != "" {
		if req.SourceLang == "" {
			return none, none, nil, ErrGlossaryNeedsLang
		}
		var err error
		if lookup, err = s.glossaries.Lookup(ctx, req.GlossaryID, req.Owner, req.SourceLang, req.TargetLang); err != nil {
			return none, none, nil, err
		}
	}
	return format, output, lookup, nil
}

// Create validates an upload, charges quota, stores the input artifact
// and registers the document. Translation starts with Dispatch.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	format, output, _, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	id, err := idgen.GenerateHexID(idLength)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate document id")
	}
	key, err := idgen.GenerateHexID(keyLength)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate document key")
	}

	// The upload is stored before charging since billed size is its byte count.
	artifact, err := s.artifacts.Save(ctx, id, req.Body)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to store document", err)
	}
	if !artifact.Text {
		_ = s.artifacts.Delete(ctx, id)
		return nil, ErrInvalidFileFormat.WithDetail("content type " + artifact.ContentType)
	}

	if req.Usage != nil {
		if class, ok := req.Usage.TryConsumeAll(
			quota.Request{Class: quota.ClassCharacter, Amount: artifact.Size},
			quota.Request{Class: quota.ClassDocument, Amount: 1},
			quota.Request{Class: quota.ClassTeamDocument, Amount: 1},
		); !ok {
			_ = s.artifacts.Delete(ctx, id)
			metrics.RecordQuotaRejection(string(class))
			return nil, ErrQuotaExceeded.WithDetail(string(class))
		}
	}

	d := &Document{
		ID:               id,
		Key:              key,
		Owner:            req.Owner,
		Filename:         req.Filename,
		Format:           format,
		OutputFormat:     output,
		SourceLang:       req.SourceLang,
		TargetLang:       req.TargetLang,
		GlossaryID:       req.GlossaryID,
		BilledCharacters: artifact.Size,
		CreatedAt:        s.clock(),
		inputKey:         id,
	}
	s.documents.Put(id, d)
	metrics.RecordDocumentCreated()

	s.log.Info().
		Str("document_id", id).
		Str("filename", req.Filename).
		Str("content_type", artifact.ContentType).
		Int64("billed_characters", artifact.Size).
		Str("target_lang", req.TargetLang).
		Msg("document stored")
	return d, nil
}

// Dispatch schedules the one-shot translation of d for sess. When the job
// cannot be scheduled the document fails terminally.
func (s *Service) Dispatch(ctx context.Context, d *Document, sess *session.Session) {
	err := s.dispatcher.Submit(jobType, d.ID, func(jobCtx context.Context) error {
		return s.Translate(jobCtx, d, sess)
	})
	if err != nil {
		s.log.Error().Err(err).Str("document_id", d.ID).Msg("failed to schedule translation")
		d.fail(msgInternalFailed)
		s.dropInput(ctx, d)
		metrics.RecordDocumentTranslation("error")
	}
}

// Translate runs the translation of d once. The input artifact is removed
// regardless of outcome, and a panic fails the document.
func (s *Service) Translate(ctx context.Context, d *Document, sess *session.Session) (err error) {
	defer s.dropInput(ctx, d)
	log := s.log.With().Str("document_id", d.ID).Logger()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordDocumentTranslation("error")
			d.fail(msgInternalFailed)
			log.Error().Interface("panic", r).Msg("document translation panicked")
			err = fmt.Errorf("document translation panicked: %v", r)
		}
	}()

	if sess != nil && sess.ConsumeDocFailure() {
		metrics.RecordForcedFault("doc_failure")
		metrics.RecordDocumentTranslation("error")
		d.fail(msgForcedFailure)
		log.Info().Msg("failing translation as requested by session")
		return nil
	}

	out, detected, err := s.render(ctx, d)
	if err != nil {
		metrics.RecordDocumentTranslation("error")
		d.fail(msgInternalFailed)
		return err
	}
	if language.SameLanguage(detected, d.TargetLang) {
		metrics.RecordDocumentTranslation("error")
		d.fail(msgSameLanguage)
		log.Info().Str("detected", detected).Msg("detected source equals target language")
		return nil
	}

	outKey := d.ID + ".result" + d.OutputFormat.Extension
	if _, err := s.artifacts.Save(ctx, outKey, strings.NewReader(string(out))); err != nil {
		metrics.RecordDocumentTranslation("error")
		d.fail(msgInternalFailed)
		return fmt.Errorf("store result: %w", err)
	}
	if !d.recordOutput(outKey) {
		_ = s.artifacts.Delete(ctx, outKey)
		log.Debug().Msg("document released during translation, result discarded")
		return nil
	}

	metrics.RecordDocumentTranslation("done")
	log.Info().Str("target_lang", d.TargetLang).Str("result", outKey).Msg("document translated")
	return nil
}

func (s *Service) render(ctx context.Context, d *Document) ([]byte, string, error) {
	d.mu.Lock()
	inputKey := d.inputKey
	d.mu.Unlock()
	if inputKey == "" {
		return nil, "", fmt.Errorf("document %s has no input artifact", d.ID)
	}

	rc, _, err := s.artifacts.Open(ctx, inputKey)
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	defer rc.Close()
	input, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	s.log.Debug().
		Str("document_id", d.ID).
		Str("preview", s.sanitizer.SanitizeText(string(input))).
		Msg("rendering document")

	var lookup language.Lookup
	if d.GlossaryID != "" {
		// A glossary removed since upload falls back to placeholder text.
		if lookup, err = s.glossaries.Lookup(ctx, d.GlossaryID, d.Owner, d.SourceLang, d.TargetLang); err != nil {
			lookup = nil
		}
	}

	if d.Format.Family == FamilyHTML {
		return translateHTML(s.catalog, input, d.TargetLang, d.SourceLang, lookup)
	}
	out, detected := translateText(s.catalog, input, d.TargetLang, d.SourceLang, lookup)
	return out, detected, nil
}

func (s *Service) dropInput(ctx context.Context, d *Document) {
	if key := d.takeInput(); key != "" {
		if err := s.artifacts.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("document_id", d.ID).Msg("failed to delete input artifact")
		}
	}
}

// Get returns the document when id, key and owner all match, refreshing
// its idle timer. Any mismatch is reported as not found.
func (s *Service) Get(ctx context.Context, id, key, owner string) (*Document, error) {
	if !idgen.IsHexID(id, idLength) {
		return nil, ErrDocumentNotFound
	}
	d, ok := s.documents.Get(id)
	if !ok || d.Key != key || d.Owner != owner {
		return nil, ErrDocumentNotFound
	}
	s.documents.Touch(id)
	return d, nil
}

// Status derives the current status of an owned document.
func (s *Service) Status(ctx context.Context, id, key, owner string, t Timing) (Snapshot, error) {
	d, err := s.Get(ctx, id, key, owner)
	if err != nil {
		return Snapshot{}, err
	}
	return d.snapshot(s.clock(), t), nil
}

// Download opens the translated output of a done document.
func (s *Service) Download(ctx context.Context, id, key, owner string, t Timing) (*Document, *Result, error) {
	d, err := s.Get(ctx, id, key, owner)
	if err != nil {
		return nil, nil, err
	}
	if snap := d.snapshot(s.clock(), t); snap.Status != StatusDone {
		return nil, nil, ErrNotReady.WithDetail(string(snap.Status))
	}
	outKey := d.output()
	rc, size, err := s.artifacts.Open(ctx, outKey)
	if err != nil {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to open result", err)
	}
	return d, &Result{
		Body:        rc,
		Size:        size,
		Filename:    d.DownloadName(),
		ContentType: d.OutputFormat.ContentType,
	}, nil
}

// Remove deletes the record and its remaining artifacts.
func (s *Service) Remove(ctx context.Context, d *Document) {
	if _, ok := s.documents.Delete(d.ID); !ok {
		return
	}
	s.deleteArtifacts(ctx, d)
	s.log.Info().Str("document_id", d.ID).Msg("document removed after delivery")
}

// Len returns the number of live documents.
func (s *Service) Len() int {
	return s.documents.Len()
}

// Sweep evicts documents idle past their lifetime as of now.
func (s *Service) Sweep(now time.Time) int {
	return s.documents.Sweep(now)
}

// Start begins expiring idle documents.
func (s *Service) Start(ctx context.Context) {
	s.documents.Start(ctx)
}

// Stop halts expiry.
func (s *Service) Stop() {
	s.documents.Stop()
}
