package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/translate-mock/internal/config"
	"github.com/janhq/translate-mock/internal/domain"
	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/infrastructure"
	"github.com/janhq/translate-mock/internal/infrastructure/observability"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		ServiceName:           "translate-mock-test",
		Environment:           "test",
		HTTPPort:              3000,
		LogLevel:              "error",
		PIILevel:              "hashed",
		ShutdownTimeout:       time.Second,
		ResourceLifetime:      time.Minute,
		SweepInterval:         time.Second,
		DocumentDir:           t.TempDir(),
		MaxUploadBytes:        1 << 20,
		TranslationWorkers:    2,
		TranslationQueueSize:  16,
		DefaultCharacterLimit: 20000000,
		DefaultDocumentLimit:  10000,
		NoResponseTimeout:     50 * time.Millisecond,
		TraceSampleRatio:      1,
		MetricExportInterval:  time.Minute,
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig(t)
	log := zerolog.Nop()
	ctx := context.Background()

	telemetry, err := observability.Setup(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = telemetry.Shutdown(context.Background()) })

	opts := infrastructure.ProvideStoreOptions(cfg)
	artifacts, err := infrastructure.ProvideLocalStorage(cfg, log)
	require.NoError(t, err)
	instrumenter, err := infrastructure.ProvideWorkerInstrumenter(telemetry, cfg)
	require.NoError(t, err)
	pool := infrastructure.ProvideDispatcher(cfg, instrumenter, log)
	pool.Start(ctx)
	t.Cleanup(pool.Stop)

	catalog := domain.ProvideCatalog()
	sanitizer := infrastructure.ProvideSanitizer(cfg)
	accounts := domain.ProvideAccountRegistry(cfg, opts, sanitizer, log)
	sessions := domain.ProvideSessionRegistry(opts, log)
	glossaries := domain.ProvideGlossaryService(catalog, opts, log)
	styleRules := domain.ProvideStyleRuleService(catalog, opts, log)
	documents := domain.ProvideDocumentService(catalog, artifacts, glossaries, pool, sanitizer, opts, log)
	translations := domain.ProvideTranslationService(catalog, glossaries, styleRules, sanitizer, log)

	handlerProvider := handlers.NewProvider(
		handlers.NewTranslationHandler(translations, catalog),
		handlers.NewDocumentHandler(documents),
		handlers.NewGlossaryHandler(glossaries),
		handlers.NewStyleRuleHandler(styleRules),
	)
	srv := httpserver.New(cfg, log, sessions, artifacts, routes.NewProvider(handlerProvider, accounts))
	return srv.Handler()
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	headers     map[string]string
}

func do(t *testing.T, h http.Handler, r request) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func form(t *testing.T, h http.Handler, path, key string, values url.Values, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Authorization"] = "DeepL-Auth-Key " + key
	return do(t, h, request{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(values.Encode()),
		contentType: "application/x-www-form-urlencoded",
		headers:     headers,
	})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCoreRoutes(t *testing.T) {
	h := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, h, request{method: http.MethodGet, path: "/healthz"}).Code)
	assert.Equal(t, http.StatusOK, do(t, h, request{method: http.MethodGet, path: "/readyz"}).Code)
	assert.Equal(t, http.StatusOK, do(t, h, request{method: http.MethodGet, path: "/metrics"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, request{method: http.MethodGet, path: "/v2/unknown?auth_key=k"}).Code)
}

func TestAuthentication(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    int
	}{
		{"missing credential", "/v2/usage", nil, http.StatusForbidden},
		{"reserved credential", "/v2/usage?auth_key=invalid", nil, http.StatusForbidden},
		{"query credential", "/v2/usage?auth_key=smoke_test", nil, http.StatusOK},
		{"header credential", "/v2/usage", map[string]string{"Authorization": "DeepL-Auth-Key abc:fx"}, http.StatusOK},
		{"v3 requires credential", "/v3/glossaries", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, request{method: http.MethodGet, path: tt.path, headers: tt.headers})
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.NotEmpty(t, decode[responses.ErrorResponse](t, w).Message)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	h := newTestServer(t)

	w := form(t, h, "/v2/translate", "k1", url.Values{"text": {"hello", "Protonenstrahl"}, "target_lang": {"EN-GB"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[responses.TranslateResponse](t, w)
	require.Len(t, resp.Translations, 2)
	assert.Equal(t, "EN", resp.Translations[0].DetectedSourceLanguage)
	assert.Equal(t, "DE", resp.Translations[1].DetectedSourceLanguage)
	assert.Equal(t, "proton beam", resp.Translations[1].Text)

	body := `{"text":["hello"],"target_lang":"DE"}`
	w = do(t, h, request{
		method:      http.MethodPost,
		path:        "/v2/translate",
		body:        strings.NewReader(body),
		contentType: "application/json",
		headers:     map[string]string{"Authorization": "DeepL-Auth-Key k1"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Protonenstrahl", decode[responses.TranslateResponse](t, w).Translations[0].Text)

	w = do(t, h, request{method: http.MethodGet, path: "/v2/translate?auth_key=k1&text=hello&target_lang=DE"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTranslateValidation(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing target", url.Values{"text": {"hello"}}},
		{"unknown target", url.Values{"text": {"hello"}, "target_lang": {"XX"}}},
		{"missing text", url.Values{"target_lang": {"DE"}}},
		{"bad formality", url.Values{"text": {"hello"}, "target_lang": {"DE"}, "formality": {"rude"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := form(t, h, "/v2/translate", "k", tt.values, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[responses.ErrorResponse](t, w).Message)
		})
	}
}

func TestSessionRateLimit(t *testing.T) {
	h := newTestServer(t)
	headers := func() map[string]string {
		return map[string]string{
			session.TokenHeader:           "rate",
			session.HeaderRateLimitCount: "1",
		}
	}
	values := url.Values{"text": {"hello"}, "target_lang": {"DE"}}

	assert.Equal(t, http.StatusTooManyRequests, form(t, h, "/v2/translate", "k", values, headers()).Code)
	assert.Equal(t, http.StatusOK, form(t, h, "/v2/translate", "k", values, headers()).Code)
}

func TestCharacterQuotaAndUsage(t *testing.T) {
	h := newTestServer(t)
	headers := func() map[string]string {
		return map[string]string{
			session.TokenHeader:              "quota",
			session.HeaderInitCharacterLimit: "8",
		}
	}

	w := form(t, h, "/v2/translate", "quota-key", url.Values{"text": {"hello"}, "target_lang": {"DE"}}, headers())
	require.Equal(t, http.StatusOK, w.Code)

	w = form(t, h, "/v2/translate", "quota-key", url.Values{"text": {"hello"}, "target_lang": {"DE"}}, headers())
	assert.Equal(t, responses.StatusQuotaExceeded, w.Code)

	w = form(t, h, "/v2/usage", "quota-key", url.Values{}, headers())
	require.Equal(t, http.StatusOK, w.Code)
	usage := decode[responses.UsageResponse](t, w)
	require.NotNil(t, usage.CharacterCount)
	require.NotNil(t, usage.CharacterLimit)
	assert.Equal(t, int64(5), *usage.CharacterCount)
	assert.Equal(t, int64(8), *usage.CharacterLimit)
}

func TestLanguages(t *testing.T) {
	h := newTestServer(t)

	assert.Equal(t, http.StatusOK, form(t, h, "/v2/languages", "k", url.Values{"type": {"target"}}, nil).Code)
	assert.Equal(t, http.StatusBadRequest, form(t, h, "/v2/languages", "k", url.Values{"type": {"other"}}, nil).Code)
	assert.Equal(t, http.StatusOK, form(t, h, "/v2/glossary-language-pairs", "k", url.Values{}, nil).Code)
}

func upload(t *testing.T, h http.Handler, key, filename, content string, values url.Values, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, vs := range values {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Authorization"] = "DeepL-Auth-Key " + key
	return do(t, h, request{
		method:      http.MethodPost,
		path:        "/v2/document",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		headers:     headers,
	})
}

func awaitStatus(t *testing.T, h http.Handler, key string, handle responses.DocumentHandleResponse, want string) responses.DocumentStatusResponse {
	t.Helper()
	var status responses.DocumentStatusResponse
	require.Eventually(t, func() bool {
		w := form(t, h, "/v2/document/"+handle.DocumentID, key, url.Values{"document_key": {handle.DocumentKey}}, nil)
		if w.Code != http.StatusOK {
			return false
		}
		status = decode[responses.DocumentStatusResponse](t, w)
		return status.Status == want
	}, 2*time.Second, 10*time.Millisecond)
	return status
}

func TestDocumentFlow(t *testing.T) {
	h := newTestServer(t)

	w := upload(t, h, "doc-key", "notes.txt", "hello\n\nworld", url.Values{"target_lang": {"DE"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	handle := decode[responses.DocumentHandleResponse](t, w)
	assert.Len(t, handle.DocumentID, 32)
	assert.Len(t, handle.DocumentKey, 64)

	w = form(t, h, "/v2/document/"+handle.DocumentID, "doc-key", url.Values{"document_key": {"wrong"}}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = form(t, h, "/v2/document/"+handle.DocumentID, "other-key", url.Values{"document_key": {handle.DocumentKey}}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	status := awaitStatus(t, h, "doc-key", handle, "done")
	require.NotNil(t, status.BilledCharacters)
	assert.Equal(t, int64(len("hello\n\nworld")), *status.BilledCharacters)

	w = form(t, h, "/v2/document/"+handle.DocumentID+"/result", "doc-key", url.Values{"document_key": {handle.DocumentKey}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Protonenstrahl\n\nProtonenstrahl", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "notes.txt")

	// Delivered documents are gone.
	w = form(t, h, "/v2/document/"+handle.DocumentID, "doc-key", url.Values{"document_key": {handle.DocumentKey}}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name     string
		filename string
		values   url.Values
		want     int
	}{
		{"missing file", "", url.Values{"target_lang": {"DE"}}, http.StatusBadRequest},
		{"unknown extension", "notes.xyz", url.Values{"target_lang": {"DE"}}, http.StatusBadRequest},
		{"missing target", "notes.txt", url.Values{}, http.StatusBadRequest},
		{"same language", "notes.txt", url.Values{"target_lang": {"DE"}, "source_lang": {"DE"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upload(t, h, "k", tt.filename, "hello", tt.values, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestDocumentSessionFaults(t *testing.T) {
	h := newTestServer(t)

	headers := map[string]string{
		session.TokenHeader:      "doc-fault",
		session.HeaderDocFailure: "1",
	}
	w := upload(t, h, "k", "notes.txt", "hello", url.Values{"target_lang": {"DE"}}, headers)
	require.Equal(t, http.StatusOK, w.Code)
	handle := decode[responses.DocumentHandleResponse](t, w)

	status := awaitStatus(t, h, "k", handle, "error")
	assert.Equal(t, "Translation error triggered", status.ErrorMessage)

	w = form(t, h, "/v2/document/"+handle.DocumentID+"/result", "k", url.Values{"document_key": {handle.DocumentKey}}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	quotaHeaders := map[string]string{
		session.TokenHeader:             "doc-quota",
		session.HeaderInitDocumentLimit: "1",
	}
	w = upload(t, h, "doc-quota-key", "notes.txt", "hello", url.Values{"target_lang": {"DE"}}, quotaHeaders)
	assert.Equal(t, http.StatusOK, w.Code)
	w = upload(t, h, "doc-quota-key", "notes.txt", "hello", url.Values{"target_lang": {"DE"}}, quotaHeaders)
	assert.Equal(t, responses.StatusQuotaExceeded, w.Code)
}

func TestGlossaryV2(t *testing.T) {
	h := newTestServer(t)

	w := form(t, h, "/v2/glossaries", "g", url.Values{
		"name":           {"greetings"},
		"source_lang":    {"en"},
		"target_lang":    {"de"},
		"entries":        {"hello\tHallo"},
		"entries_format": {"tsv"},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[responses.GlossaryV2Response](t, w)
	assert.True(t, created.Ready)
	assert.Equal(t, 1, created.EntryCount)

	w = form(t, h, "/v2/translate", "g", url.Values{
		"text":        {"hello"},
		"source_lang": {"EN"},
		"target_lang": {"DE"},
		"glossary_id": {created.GlossaryID},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hallo", decode[responses.TranslateResponse](t, w).Translations[0].Text)

	auth := map[string]string{"Authorization": "DeepL-Auth-Key g"}
	w = do(t, h, request{method: http.MethodGet, path: "/v2/glossaries/" + created.GlossaryID + "/entries", headers: auth})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello\tHallo", w.Body.String())

	w = do(t, h, request{method: http.MethodGet, path: "/v2/glossaries/" + created.GlossaryID, headers: map[string]string{"Authorization": "DeepL-Auth-Key other"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, request{method: http.MethodDelete, path: "/v2/glossaries/" + created.GlossaryID, headers: auth})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, request{method: http.MethodGet, path: "/v2/glossaries/" + created.GlossaryID, headers: auth})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlossaryV3(t *testing.T) {
	h := newTestServer(t)
	auth := map[string]string{"Authorization": "DeepL-Auth-Key g3"}
	jsonReq := func(method, path, body string) *httptest.ResponseRecorder {
		return do(t, h, request{method: method, path: path, body: strings.NewReader(body), contentType: "application/json", headers: auth})
	}

	w := jsonReq(http.MethodPost, "/v3/glossaries", `{"name":"multi","dictionaries":[{"source_lang":"en","target_lang":"de","entries":"hello\tHallo","entries_format":"tsv"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[responses.GlossaryResponse](t, w)
	require.Len(t, created.Dictionaries, 1)
	base := "/v3/glossaries/" + created.GlossaryID

	w = jsonReq(http.MethodPut, base+"/dictionaries", `{"source_lang":"en","target_lang":"fr","entries":"hello,bonjour","entries_format":"csv"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = jsonReq(http.MethodPatch, base, `{"name":"renamed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode[responses.GlossaryResponse](t, w)
	assert.Equal(t, "renamed", patched.Name)
	assert.Len(t, patched.Dictionaries, 2)

	w = do(t, h, request{method: http.MethodGet, path: base + "/entries?source_lang=en&target_lang=fr", headers: auth})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[responses.GlossaryEntriesResponse](t, w)
	require.Len(t, entries.Dictionaries, 1)
	assert.Equal(t, "hello\tbonjour", entries.Dictionaries[0].Entries)

	w = do(t, h, request{method: http.MethodGet, path: base + "/entries", headers: auth})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, request{method: http.MethodDelete, path: base + "/dictionaries?source_lang=en&target_lang=fr", headers: auth})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, request{method: http.MethodGet, path: "/v3/glossaries", headers: auth})
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[responses.GlossaryListResponse](t, w)
	require.Len(t, list.Glossaries, 1)
	assert.Len(t, list.Glossaries[0].Dictionaries, 1)

	w = do(t, h, request{method: http.MethodDelete, path: base, headers: auth})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSessionExpectProxy(t *testing.T) {
	h := newTestServer(t)
	headers := func(extra map[string]string) map[string]string {
		out := map[string]string{
			session.TokenHeader:       "proxy",
			session.HeaderExpectProxy: "1",
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	assert.Equal(t, http.StatusBadRequest, form(t, h, "/v2/usage", "k", url.Values{}, headers(nil)).Code)
	assert.Equal(t, http.StatusOK, form(t, h, "/v2/usage", "k", url.Values{}, headers(map[string]string{"X-Forwarded-For": "10.0.0.1"})).Code)
}

func TestSessionNoResponse(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 2 * time.Second}
	send := func() (*http.Response, error) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v2/usage?auth_key=k", nil)
		require.NoError(t, err)
		req.Header.Set(session.TokenHeader, "silent")
		req.Header.Set(session.HeaderNoResponseCount, "1")
		return client.Do(req)
	}

	resp, err := send()
	if err == nil {
		resp.Body.Close()
	}
	require.Error(t, err)

	resp, err = send()
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDocumentRejectsBinaryBody(t *testing.T) {
	h := newTestServer(t)

	w := upload(t, h, "k", "a.txt", "%PDF-1.4 binary", url.Values{"target_lang": {"DE"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Invalid file data.", decode[responses.ErrorResponse](t, w).Message)
}

func TestStyleRules(t *testing.T) {
	h := newTestServer(t)
	auth := map[string]string{"Authorization": "DeepL-Auth-Key s1"}
	get := func(path string) *httptest.ResponseRecorder {
		return do(t, h, request{method: http.MethodGet, path: path, headers: auth})
	}
	const defaultID = "dca2e053-8ae5-45e6-a0d2-881156e7f4e4"

	w := get("/v3/style_rules")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[responses.StyleRuleListResponse](t, w)
	require.Len(t, list.StyleRules, 1)
	assert.Equal(t, defaultID, list.StyleRules[0].StyleID)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", list.StyleRules[0].CreationTime)
	assert.Nil(t, list.StyleRules[0].ConfiguredRules)
	assert.NotContains(t, w.Body.String(), "custom_instructions")

	w = get("/v3/style_rules?detailed=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"custom_instructions":[]`)
	assert.Contains(t, w.Body.String(), `"calendar_era":"use_bce_and_ce"`)

	w = do(t, h, request{
		method:      http.MethodPost,
		path:        "/v3/style_rules",
		body:        strings.NewReader(`{"name":"House","language":"de","configured_rules":{"punctuation":{"quotes":"guillemets"}},"custom_instructions":[{"label":"short","prompt":"Be brief"}]}`),
		contentType: "application/json",
		headers:     auth,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[responses.StyleRuleResponse](t, w)
	assert.Equal(t, "de", created.Language)

	w = get("/v3/style_rules?page=0&page_size=1")
	require.Equal(t, http.StatusOK, w.Code)
	list = decode[responses.StyleRuleListResponse](t, w)
	require.Len(t, list.StyleRules, 1)
	assert.Equal(t, created.StyleID, list.StyleRules[0].StyleID)

	assert.Equal(t, http.StatusBadRequest, get("/v3/style_rules?page_size=0").Code)
	assert.Equal(t, http.StatusBadRequest, get("/v3/style_rules?page=x").Code)
	assert.Equal(t, http.StatusBadRequest, get("/v3/style_rules/not-a-uuid").Code)
	assert.Equal(t, http.StatusOK, get("/v3/style_rules/"+defaultID).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, request{
		method:  http.MethodGet,
		path:    "/v3/style_rules/" + created.StyleID,
		headers: map[string]string{"Authorization": "DeepL-Auth-Key other"},
	}).Code)

	w = form(t, h, "/v2/translate", "s1", url.Values{"text": {"hello"}, "target_lang": {"DE"}, "style_id": {created.StyleID}}, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = form(t, h, "/v2/translate", "s1", url.Values{"text": {"hello"}, "target_lang": {"FR"}, "style_id": {created.StyleID}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, h, request{method: http.MethodDelete, path: "/v3/style_rules/" + created.StyleID, headers: auth})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, get("/v3/style_rules/"+created.StyleID).Code)
}

func TestRephrase(t *testing.T) {
	h := newTestServer(t)

	w := form(t, h, "/v2/write/rephrase", "r1", url.Values{"text": {"hello there"}, "writing_style": {"business"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[responses.RephraseResponse](t, w)
	require.Len(t, resp.Improvements, 1)
	assert.Equal(t, responses.ImprovementResponse{Text: "hello there", DetectedSourceLanguage: "en", TargetLanguage: "en"}, resp.Improvements[0])

	w = form(t, h, "/v2/write/rephrase", "r1", url.Values{"text": {"hello"}, "target_lang": {"de"}, "tone": {"friendly"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Protonenstrahl", decode[responses.RephraseResponse](t, w).Improvements[0].Text)

	w = form(t, h, "/v2/write/rephrase", "r1", url.Values{"text": {"hello"}, "tone": {"grumpy"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Value for 'tone' not supported.", decode[responses.ErrorResponse](t, w).Message)

	w = form(t, h, "/v2/write/rephrase", "r1", url.Values{"text": {"hello"}, "writing_style": {"casual"}, "tone": {"friendly"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
