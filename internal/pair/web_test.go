package pair

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/kvboard/kvboard/internal/http/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWeb(t *testing.T, svc webService) *web {
	renderer, err := html.NewRenderer(false)
	require.NoError(t, err)
	return &web{Renderer: renderer, svc: svc}
}

func postForm(t *testing.T, app *web, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	switch path {
	case "/pairs/create":
		app.create(w, r)
	case "/pairs/delete":
		app.delete(w, r)
	default:
		t.Fatalf("unknown path: %s", path)
	}
	return w
}

func TestWeb_ListHandler(t *testing.T) {
	t.Run("lists pairs in insertion order", func(t *testing.T) {
		app := newTestWeb(t, &fakeWebService{pairs: []Pair{
			{Key: "username", Value: "john"},
			{Key: "city", Value: "berlin"},
		}})

		r := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		app.list(w, r)
		require.Equal(t, 200, w.Code)

		doc, err := htmlquery.Parse(w.Body)
		require.NoError(t, err)

		rows := htmlquery.Find(doc, "//table[@id='pairs']/tbody/tr")
		require.Len(t, rows, 2)
		assert.Equal(t, "username", htmlquery.InnerText(htmlquery.FindOne(rows[0], "td[@class='key']")))
		assert.Equal(t, "john", htmlquery.InnerText(htmlquery.FindOne(rows[0], "td[@class='value']")))
		assert.Equal(t, "city", htmlquery.InnerText(htmlquery.FindOne(rows[1], "td[@class='key']")))

		assert.NotNil(t, htmlquery.FindOne(doc, "//span[@class='status-ok']"))
	})

	t.Run("degrades to disconnected status when backend unreachable", func(t *testing.T) {
		app := newTestWeb(t, &fakeWebService{pingError: errors.New("connection refused")})

		r := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		app.list(w, r)

		// page still renders, empty
		require.Equal(t, 200, w.Code)

		doc, err := htmlquery.Parse(w.Body)
		require.NoError(t, err)
		assert.NotNil(t, htmlquery.FindOne(doc, "//span[@class='status-degraded']"))
		assert.Empty(t, htmlquery.Find(doc, "//table[@id='pairs']/tbody/tr"))
	})
}

func TestWeb_CreateHandler(t *testing.T) {
	t.Run("store pair", func(t *testing.T) {
		svc := &fakeWebService{}
		app := newTestWeb(t, svc)

		w := postForm(t, app, "/pairs/create", url.Values{
			"key":   {"username"},
			"value": {"john"},
		})

		if assert.Equal(t, 302, w.Code) {
			redirect, err := w.Result().Location()
			require.NoError(t, err)
			assert.Equal(t, "/", redirect.Path)
		}
		assert.Equal(t, []Pair{{Key: "username", Value: "john"}}, svc.pairs)
	})

	t.Run("storing same key twice overwrites value", func(t *testing.T) {
		svc := &fakeWebService{}
		app := newTestWeb(t, svc)

		postForm(t, app, "/pairs/create", url.Values{"key": {"username"}, "value": {"john"}})
		postForm(t, app, "/pairs/create", url.Values{"key": {"username"}, "value": {"jane"}})

		assert.Equal(t, []Pair{{Key: "username", Value: "jane"}}, svc.pairs)
	})

	t.Run("empty value rejected", func(t *testing.T) {
		svc := &fakeWebService{}
		app := newTestWeb(t, svc)

		w := postForm(t, app, "/pairs/create", url.Values{"key": {"username"}})

		assert.Equal(t, 302, w.Code)
		assert.Empty(t, svc.pairs)

		// rejection is surfaced to the user as a flash message
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "flash", cookies[0].Name)
	})
}

func TestWeb_DeleteHandler(t *testing.T) {
	t.Run("delete pair", func(t *testing.T) {
		svc := &fakeWebService{pairs: []Pair{{Key: "username", Value: "john"}}}
		app := newTestWeb(t, svc)

		w := postForm(t, app, "/pairs/delete", url.Values{"key": {"username"}})

		if assert.Equal(t, 302, w.Code) {
			redirect, err := w.Result().Location()
			require.NoError(t, err)
			assert.Equal(t, "/", redirect.Path)
		}
		assert.Empty(t, svc.pairs)
	})

	t.Run("deleting absent key succeeds", func(t *testing.T) {
		svc := &fakeWebService{pairs: []Pair{{Key: "username", Value: "john"}}}
		app := newTestWeb(t, svc)

		w := postForm(t, app, "/pairs/delete", url.Values{"key": {"does-not-exist"}})

		assert.Equal(t, 302, w.Code)
		// table left unchanged
		assert.Equal(t, []Pair{{Key: "username", Value: "john"}}, svc.pairs)
	})
}

func TestWeb_RefreshHandler(t *testing.T) {
	app := newTestWeb(t, &fakeWebService{})

	r := httptest.NewRequest("GET", "/pairs", nil)
	w := httptest.NewRecorder()
	app.refresh(w, r)

	if assert.Equal(t, 302, w.Code) {
		redirect, err := w.Result().Location()
		require.NoError(t, err)
		assert.Equal(t, "/", redirect.Path)
	}
}
