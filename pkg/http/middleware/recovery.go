package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Recover keeps a panicking scorer or handler from taking the whole
// API down: the panic is logged with its stack and the caller gets a
// 500 envelope.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer handlePanic(c)
			return next(c)
		}
	}
}

func handlePanic(c echo.Context) {
	r := recover()
	if r == nil {
		return
	}

	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	log.Error().
		Err(err).
		Str("uri", c.Request().RequestURI).
		Bytes("stack", debug.Stack()).
		Msg("handler panic")

	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  http.StatusInternalServerError,
		"message": "Internal Server Error",
	})
}
