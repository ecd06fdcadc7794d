// Package middleware provides HTTP middleware for the Askio API.
package middleware

import "net/http"

// AllowEmbedding returns middleware that marks responses as embeddable in
// third-party iframes. The widget route must load inside arbitrary host
// pages, so frame-ancestors is left open; everything else in the router
// should not be wrapped with this.
func AllowEmbedding(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "frame-ancestors *")
		w.Header().Del("X-Frame-Options")
		next.ServeHTTP(w, r)
	})
}
