package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxDrainBytes caps how much of an unread body is discarded after the handler returns,
// e.g. when an ingest request is rejected before its payload is decoded.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards what is left of the request body (up to maxDrainBytes) and closes it,
// so the underlying connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			if err := r.Body.Close(); err != nil {
				log.Debugf("close request body [%s %s]: %s", r.Method, r.URL.Path, err)
			}
		})
	}
}
