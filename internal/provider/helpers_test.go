// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/metasearch/internal/httputil"
)

// fixedServer replies to every request with status and body, recording the
// last request it saw.
type fixedServer struct {
	*httptest.Server
	last *http.Request
	hits int
}

func newFixedServer(t *testing.T, status int, contentType, body string) *fixedServer {
	t.Helper()
	fs := &fixedServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.last = r
		fs.hits++
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// swapBase points *base at url for the duration of the test.
func swapBase(t *testing.T, base *string, url string) {
	t.Helper()
	old := *base
	*base = url
	t.Cleanup(func() { *base = old })
}

func testClient(ts *httptest.Server) *httputil.Client {
	return httputil.New(ts.Client(), "metasearch-test/1.0")
}
