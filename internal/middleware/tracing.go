package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/bizreviews/internal/server"
	"github.com/deppfellow/bizreviews/internal/storeerr"
)

// TracingMiddleware owns the New Relic middleware. nrApp is nil when New
// Relic is disabled and every method degrades to a pass-through.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs a TracingMiddleware; nrApp may be nil.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the addressed business and
// review, notices handler errors and counts store outages as a custom event.
// It must run after NewRelicMiddleware.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			addRequestAttributes(txn, c)

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))

				if code := storeerr.ErrCode(err); code == storeerr.Unavailable || code == storeerr.Timeout {
					tm.nrApp.RecordCustomEvent("StoreUnavailable", map[string]interface{}{
						"route": c.Path(),
						"code":  code.String(),
					})
				}
			}

			txn.AddAttribute("http.status_code", c.Response().Status)
			return err
		}
	}
}

func addRequestAttributes(txn *newrelic.Transaction, c echo.Context) {
	txn.AddAttribute("http.real_ip", c.RealIP())
	if requestID := GetRequestID(c); requestID != "" {
		txn.AddAttribute("request.id", requestID)
	}
	if bid := c.Param("id"); bid != "" {
		txn.AddAttribute("business.id", bid)
	}
	if rid := c.Param("rid"); rid != "" {
		txn.AddAttribute("review.id", rid)
	}
	if pn := c.QueryParam("pn"); pn != "" {
		txn.AddAttribute("page.number", pn)
	}
}
