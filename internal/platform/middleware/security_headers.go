package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets response headers for a local API that serves JSON and
// printable customer sheets.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "0")

			// Customer sheets carry an inline stylesheet and nothing else.
			h.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")

			// Patient records must not linger in browser caches.
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}
