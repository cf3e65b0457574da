package handler

import "github.com/labstack/echo/v4"

// envelope is the standard response shape for every endpoint:
// {"success": bool, "data": ..., "message": ..., "errors": [...], "count": n}.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func respondMsg(c echo.Context, code int, data any, msg string) error {
	return c.JSON(code, envelope{Success: true, Data: data, Message: msg})
}

// respondList includes the item count alongside the data, matching the
// collection endpoints' contract.
func respondList(c echo.Context, code int, data any, count int) error {
	return c.JSON(code, envelope{Success: true, Data: data, Count: &count})
}

func respondError(c echo.Context, code int, msg string, errs ...string) error {
	return c.JSON(code, envelope{Success: false, Message: msg, Errors: errs})
}
