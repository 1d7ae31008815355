package middleware

import (
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
)

// OpenCORS stamps the wildcard CORS headers on every response, whether or
// not the request carries an Origin header. It does nothing unless origins
// contains "*"; restricted origin lists are left to echo's CORS middleware.
func OpenCORS(origins, methods, headers []string) echo.MiddlewareFunc {
	open := slices.Contains(origins, "*")
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !open {
			return next
		}
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			return next(c)
		}
	}
}
