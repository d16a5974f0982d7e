package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/user/build-triage/internal/adapter/github"
)

// Signature is a middleware factory that verifies the GitHub HMAC signature
// over the raw request body. The body is buffered and restored so the
// handler can decode it after verification.
func Signature(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("failed to read webhook body", "error", err)
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			r.Body.Close()

			signature := r.Header.Get(github.SignatureHeader)
			if !github.VerifySignature(secret, signature, payload) {
				logger.Warn("webhook signature verification failed",
					"remote_addr", r.RemoteAddr,
					"delivery_id", r.Header.Get(github.DeliveryHeader),
				)
				http.Error(w, "Unauthorized: invalid signature", http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(payload))
			next.ServeHTTP(w, r)
		})
	}
}
