package pair

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/http/decode"
	"github.com/kvboard/kvboard/internal/http/html"
)

type (
	// web is the web application for pairs
	web struct {
		*html.Renderer

		svc webService
	}

	// webService provides the web app with access to pairs
	webService interface {
		Set(ctx context.Context, key, value string) error
		List(ctx context.Context) ([]Pair, error)
		Delete(ctx context.Context, key string) error
		Ping(ctx context.Context) error
	}

	// listPage is the content for the pair listing page
	listPage struct {
		Pairs []Pair
		// Connected indicates whether the storage backend is reachable
		Connected bool
	}

	setParams struct {
		Key   string `schema:"key"`
		Value string `schema:"value"`
	}

	deleteParams struct {
		Key string `schema:"key"`
	}
)

func (a *web) addHandlers(r *mux.Router) {
	r.HandleFunc("/", a.list).Methods("GET")
	r.HandleFunc("/pairs", a.refresh).Methods("GET")
	r.HandleFunc("/pairs/create", a.create).Methods("POST")
	r.HandleFunc("/pairs/delete", a.delete).Methods("POST")
}

// list renders the pair listing along with a connectivity indicator. A
// storage error degrades the indicator rather than failing the page: the
// listing still renders, empty.
func (a *web) list(w http.ResponseWriter, r *http.Request) {
	page := listPage{}
	if err := a.svc.Ping(r.Context()); err == nil {
		page.Connected = true
	}
	if page.Connected {
		pairs, err := a.svc.List(r.Context())
		if err != nil {
			page.Connected = false
		} else {
			page.Pairs = pairs
		}
	}
	a.Render("pair_list.tmpl", w, r, page)
}

func (a *web) refresh(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *web) create(w http.ResponseWriter, r *http.Request) {
	var params setParams
	if err := decode.All(&params, r); err != nil {
		html.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	err := a.svc.Set(r.Context(), params.Key, params.Value)
	var missing *internal.ErrMissingParameter
	if errors.As(err, &missing) {
		html.FlashError(w, err.Error())
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		html.FlashError(w, "storing pair: "+err.Error())
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	html.FlashSuccess(w, "stored pair: "+params.Key)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *web) delete(w http.ResponseWriter, r *http.Request) {
	var params deleteParams
	if err := decode.All(&params, r); err != nil {
		html.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := a.svc.Delete(r.Context(), params.Key); err != nil {
		html.FlashError(w, "deleting pair: "+err.Error())
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	html.FlashSuccess(w, "deleted pair: "+params.Key)
	http.Redirect(w, r, "/", http.StatusFound)
}
