package mux

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ResponseJSON encodes v as JSON and writes it to the response with the given
// status code. The Content-Type header is set to "application/json".
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

// routeListing is the JSON body written by RoutesHandler.
type routeListing struct {
	Routes    []routeEntry    `json:"routes"`
	Redirects []redirectEntry `json:"redirects"`
}

type routeEntry struct {
	Pattern string   `json:"pattern"`
	Vars    []string `json:"vars,omitempty"`
}

type redirectEntry struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RoutesHandler returns a handler that lists the registered routes and
// redirect rules as JSON, in resolution order.
func (r *Router) RoutesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		listing := routeListing{
			Routes:    []routeEntry{},
			Redirects: []redirectEntry{},
		}
		for _, route := range r.tree.Routes() {
			listing.Routes = append(listing.Routes, routeEntry{Pattern: route.Pattern, Vars: route.Vars})
		}
		for _, m := range r.tree.Redirects() {
			listing.Redirects = append(listing.Redirects, redirectEntry{From: m.Source(), To: m.Target()})
		}

		ResponseJSON(w, http.StatusOK, listing)
	})
}
