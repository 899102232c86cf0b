package middleware

import (
	"net/http"
	"runtime/debug"

	"doctor-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

// Handle turns a handler panic into a 500 response
func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.log.WithFields(logrus.Fields{
					"error":      err,
					"stack":      string(debug.Stack()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": GetRequestID(r.Context()),
				}).Error("Request panic recovered")

				response.InternalServerError(w, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
