// Package requestid tags each request with an ID that is echoed back in the
// response and carried through logs and audit events.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"eligo/pkg/requestcontext"
)

// Header is read from inbound requests and set on every response.
const Header = "X-Request-ID"

const maxInboundLength = 128

// Middleware reuses a caller-supplied request ID when it looks sane and
// generates a UUID otherwise.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxInboundLength || strings.ContainsAny(id, "\r\n") {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
