// Package auth guards the admin routes with HTTP basic auth against the
// credentials from the config.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
)

func BasicAuth(login, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoded, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Basic ")
			if !ok {
				deny(w)
				return
			}

			creds, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				deny(w)
				return
			}

			gotLogin, gotPass, ok := strings.Cut(string(creds), ":")
			if !ok || !equal(gotLogin, login) || !equal(gotPass, password) {
				deny(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func deny(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Administration"`)
	http.Error(w, "Accès non autorisé", http.StatusUnauthorized)
}
