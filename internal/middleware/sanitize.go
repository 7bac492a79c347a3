package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Sanitize strips storage-operator-shaped keys (leading '$' or embedded '.')
// from the JSON request body and the query string before any handler runs.
// Bodies that do not parse as JSON pass through untouched; binding will
// reject them later if the route cares.
func Sanitize() gin.HandlerFunc {
	return func(c *gin.Context) {
		sanitizeQuery(c)
		sanitizeBody(c)
		c.Next()
	}
}

func sanitizeBody(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Request.Body = io.NopCloser(bytes.NewReader(nil))
		return
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Not JSON we can traverse; leave the body as-is.
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		return
	}

	cleaned := cleanValue(parsed)
	out, err := json.Marshal(cleaned)
	if err != nil {
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(out))
	c.Request.ContentLength = int64(len(out))
}

func sanitizeQuery(c *gin.Context) {
	if c.Request.URL.RawQuery == "" {
		return
	}

	// url.Values from Query() is a copy, so rebuild and reassign RawQuery.
	cleaned := url.Values{}
	for key, vals := range c.Request.URL.Query() {
		if isOperatorKey(key) {
			continue
		}
		for _, v := range vals {
			cleaned.Add(key, v)
		}
	}
	c.Request.URL.RawQuery = cleaned.Encode()
}

// cleanValue removes operator-shaped keys from maps at every nesting level.
// Scalars and untraversable values are returned unchanged.
func cleanValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for key, inner := range val {
			if isOperatorKey(key) {
				delete(val, key)
				continue
			}
			val[key] = cleanValue(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = cleanValue(inner)
		}
		return val
	default:
		return v
	}
}

func isOperatorKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}
