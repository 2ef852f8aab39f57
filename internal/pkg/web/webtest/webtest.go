// Package webtest holds assertions shared by HTTP handler tests.
package webtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ferdiebergado/credkit/internal/pkg/web"
)

func AssertContentType(t *testing.T, res *http.Response) {
	t.Helper()

	gotContent := res.Header.Get(web.HeaderContentType)
	if !strings.HasPrefix(gotContent, web.MimeJSON) {
		t.Errorf("res.Header.Get(%q) = %q, want: %q", web.HeaderContentType, gotContent, web.MimeJSON)
	}
}

func DecodeJSONResponse(t *testing.T, res *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode json response: %v", err)
	}

	return body
}
