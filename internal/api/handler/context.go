package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject and
// the role must be present, and the role must be one the domain knows.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	rawRole, _ := c.Get("role").(string)
	if userID == "" || rawRole == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries unknown role")
	}

	return domain.Actor{ID: userID, Role: role}, nil
}
