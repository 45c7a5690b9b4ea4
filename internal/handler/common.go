package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's ID injected by the JWT
// middleware.  The sub claim arrives as a float64 when decoded from JSON,
// but tokens issued elsewhere may carry it as a string.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errNoUser
		}
		return id, nil
	default:
		return 0, errNoUser
	}
}
