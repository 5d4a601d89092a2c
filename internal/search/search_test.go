package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ParsesResultLinks(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Acme Corp about", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, `<html><body>
<a href="/url?q=https://acme.com/about&sa=U">Acme</a>
<a href="/url?q=https://www.linkedin.com/company/acme&sa=U">LinkedIn</a>
<a href="/search?q=next">Next</a>
<a href="https://acme.com/about">Acme again</a>
<a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Ftwitter.com%2Facme&rut=x">Twitter</a>
<a href="`+srv.URL+`/self">Self</a>
<a href="mailto:hi@acme.com">Mail</a>
</body></html>`)
	}))
	defer srv.Close()

	links, err := New(srv.URL, WithInterval(0)).Search(context.Background(), "Acme Corp about")
	require.NoError(t, err)

	want := []string{
		"https://acme.com/about",
		"https://www.linkedin.com/company/acme",
		"https://twitter.com/acme",
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_Blocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithInterval(0)).Search(context.Background(), "acme")
	assert.True(t, errors.Is(err, ErrBlocked))
}

func TestSearch_Throttles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html></html>")
	}))
	defer srv.Close()

	c := New(srv.URL, WithInterval(time.Hour))
	_, err := c.Search(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, "second")
	assert.Error(t, err)
}

func TestResultLinks_SkipsEngineHost(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<a href="https://maps.google.com/place">Maps</a>
<a href="https://www.google.com/preferences">Prefs</a>
<a href="/url?q=https://support.google.com/x">Help</a>
<a href="https://example.org/">Example</a>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.org/"}, ResultLinks(doc, "www.google.com"))
}
