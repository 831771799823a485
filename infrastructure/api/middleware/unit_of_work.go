package middleware

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/axd-platform/catalog/internal/database"
	"github.com/rs/zerolog"
)

// UnitOfWork runs each request inside one database transaction bound to
// the request context. The transaction commits when the handler answers
// below 500 and rolls back otherwise, including on panic. The response is
// held back until the commit succeeds so a failed commit surfaces as 500.
// A request whose context deadline passed is rolled back and answered with
// 504, whatever the handler wrote.
func UnitOfWork(db database.Database) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			txn, err := database.NewTransaction(r.Context(), db)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			defer func() {
				if p := recover(); p != nil {
					_ = txn.Rollback()
					panic(p)
				}
			}()

			buf := &bufferedResponse{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r.WithContext(txn.Bind(r.Context())))

			if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
				// database/sql may already have rolled back on the expired context.
				if err := txn.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("rollback request transaction")
				}
				buf.reset()
				WriteError(w, r, NewAPIError(http.StatusGatewayTimeout, "request timed out", context.DeadlineExceeded))
				return
			}

			if buf.status >= http.StatusInternalServerError {
				if err := txn.Rollback(); err != nil {
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("rollback request transaction")
				}
				buf.flush(w)
				return
			}

			if err := txn.Commit(); err != nil {
				_ = txn.Rollback()
				buf.reset()
				WriteError(w, r, err)
				return
			}
			buf.flush(w)
		})
	}
}

// bufferedResponse collects a handler's status and body. Headers are
// written straight to the underlying writer's header map.
type bufferedResponse struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedResponse) reset() {
	b.body.Reset()
	b.header.Del("Content-Type")
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}
