// Package requests extracts API parameters from query strings, form bodies
// and JSON bodies.
package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const valuesKey = "request_values"

// AuthScheme prefixes the credential in the Authorization header.
const AuthScheme = "DeepL-Auth-Key"

// Values are the named parameters of one request.
type Values url.Values

// Get returns the first value of name, or "".
func (v Values) Get(name string) string {
	if vs := v[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns every value of name.
func (v Values) List(name string) []string {
	return v[name]
}

// Has reports whether name was supplied.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Parse reads the parameters of c once and caches them on the context. GET
// requests use the query string; other methods use the body, falling back to
// the query string for names the body does not carry.
func Parse(c *gin.Context) (Values, error) {
	if cached, ok := c.Get(valuesKey); ok {
		return cached.(Values), nil
	}

	query := c.Request.URL.Query()
	values := Values{}
	if c.Request.Method != http.MethodGet && c.Request.Body != nil {
		body, err := parseBody(c)
		if err != nil {
			return nil, err
		}
		values = body
	}
	for name, vs := range query {
		if _, ok := values[name]; !ok {
			values[name] = vs
		}
	}

	c.Set(valuesKey, values)
	return values, nil
}

func parseBody(c *gin.Context) (Values, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		return parseJSON(c)
	case binding.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		return Values(form.Value), nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return Values(c.Request.PostForm), nil
	}
}

// parseJSON flattens a JSON object into values. Arrays become multiple
// values; non-string scalars keep their JSON text.
func parseJSON(c *gin.Context) (Values, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Values{}, nil
		}
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	c.Set(jsonBodyKey, raw)

	values := Values{}
	for name, msg := range raw {
		var list []json.RawMessage
		if err := json.Unmarshal(msg, &list); err == nil {
			for _, item := range list {
				values[name] = append(values[name], scalar(item))
			}
			continue
		}
		values[name] = []string{scalar(msg)}
	}
	return values, nil
}

func scalar(msg json.RawMessage) string {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(msg))
}

// Credential returns the authentication key from the Authorization header,
// or from the auth_key parameter.
func Credential(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if key, ok := strings.CutPrefix(header, AuthScheme+" "); ok {
			return strings.TrimSpace(key)
		}
	}
	values, err := Parse(c)
	if err != nil {
		return ""
	}
	return values.Get("auth_key")
}
