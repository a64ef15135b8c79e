package middleware

import (
    "time"

    "github.com/labstack/echo/v4"

    "github.com/carlosargenal/enlaceibabackend/internal/observability"
)

// Metrics records request count and latency per route pattern.  Using the
// pattern instead of the raw path keeps label cardinality bounded.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            if err := next(c); err != nil {
                // render now so the recorded status is the one the client sees
                c.Error(err)
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            observability.ObserveRequest(c.Request().Method, route, c.Response().Status, start)
            return nil
        }
    }
}
