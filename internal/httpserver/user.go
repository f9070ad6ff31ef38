package httpserver

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
	"github.com/Skotchmaster/premium_service/internal/response"
	"github.com/Skotchmaster/premium_service/internal/service"
	"github.com/Skotchmaster/premium_service/internal/transport"
	"github.com/Skotchmaster/premium_service/internal/util"
	"github.com/Skotchmaster/premium_service/internal/validation"
)

const (
	msgUserNotFound   = "User not found"
	msgUserDataAbsent = "User data not exist"
	msgDeleted        = "Deleted user successfully"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	// the list query is checked on this route too
	if _, err := listQuery(c); err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "invalid query", "error", err)
		return err
	}

	id, err := userID(c)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return apperr.NotFound(msgUserNotFound, err)
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("get_user_error", "status", 400, "reason", "user not found", "user_id", id)
			return apperr.NotFound(msgUserNotFound, err)
		}
		l.Error("get_user_error", "status", 500, "reason", "cannot load user", "user_id", id, "error", err)
		return apperr.Internal(err)
	}

	return response.JSON(c, response.Success(user))
}

func (h *UserHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_users")

	q, err := listQuery(c)
	if err != nil {
		l.Warn("get_users_error", "status", 400, "reason", "invalid query", "error", err)
		return err
	}

	page, err := h.Svc.ListUsers(ctx, q.Limit, q.Offset)
	if err != nil {
		if errors.Is(err, service.ErrNoUsers) {
			l.Warn("get_users_error", "status", 400, "reason", "empty page", "limit", q.Limit, "offset", q.Offset)
			return apperr.NotFound(msgUserDataAbsent, err)
		}
		l.Error("get_users_error", "status", 500, "reason", "cannot list users", "error", err)
		return apperr.Internal(err)
	}

	return response.JSON(c, response.Success(page))
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_user")

	id, err := userID(c)
	if err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return apperr.NotFound(msgUserNotFound, err)
	}

	var req transport.UpdateUserRequest
	if err := decodeAndValidate(c, &req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	user, err := h.Svc.UpdatePremium(ctx, id, int64(*req.Premium))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("update_user_error", "status", 400, "reason", "user not found", "user_id", id)
			return apperr.NotFound(msgUserNotFound, err)
		}
		l.Error("update_user_error", "status", 500, "reason", "cannot update user", "user_id", id, "error", err)
		return apperr.Internal(err)
	}

	l.Info("update_user_success", "user_id", id, "premium", user.Premium)
	return response.JSON(c, response.Success(user))
}

// DeleteUser answers every failure with "User not found".
func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete_user")

	id, err := userID(c)
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return apperr.NotFound(msgUserNotFound, err)
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("delete_user_error", "status", 400, "reason", "user not found", "user_id", id)
		} else {
			l.Error("delete_user_error", "status", 400, "reason", "cannot delete user", "user_id", id, "error", err)
		}
		return apperr.NotFound(msgUserNotFound, err)
	}

	l.Info("delete_user_success", "user_id", id)
	return response.JSON(c, response.Message(msgDeleted))
}

// CountPremium spends one premium credit of the caller.
func (h *UserHTTP) CountPremium(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.count_premium")

	claims, ok := auth.UserFrom(c)
	if !ok {
		return apperr.Unauthorized("Invalid token")
	}

	left, err := h.Svc.ConsumePremium(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrPremiumExhausted) {
			l.Warn("count_premium_error", "status", 402, "reason", "no premium left", "user_id", claims.UserID)
			return apperr.PremiumExhausted(err)
		}
		l.Error("count_premium_error", "status", 500, "reason", "cannot consume premium", "user_id", claims.UserID, "error", err)
		return apperr.Internal(err)
	}

	return response.JSON(c, response.Success(transport.PremiumView{Premium: left}))
}

func userID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// listQuery parses limit and offset, applying the defaults when a value is
// absent.
func listQuery(c echo.Context) (transport.ListUsersQuery, error) {
	q := transport.ListUsersQuery{Limit: util.DefaultLimit, Offset: util.DefaultOffset}
	msgs := q.ValidationMessages()
	verrs := validation.Errors{}

	if v, ok, err := util.ParseInt64(c.QueryParam("limit")); err != nil {
		verrs["limit"] = msgs["limit.type"]
	} else if ok {
		q.Limit = v
	}
	if v, ok, err := util.ParseInt64(c.QueryParam("offset")); err != nil {
		verrs["offset"] = msgs["offset.type"]
	} else if ok {
		q.Offset = v
	}
	if len(verrs) > 0 {
		return q, apperr.Validation(map[string]string(verrs))
	}

	if err := c.Validate(&q); err != nil {
		return q, validationErr(err)
	}
	return q, nil
}
