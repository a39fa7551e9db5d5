package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/generated/servers"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps use case errors onto HTTP status codes.
func statusOf(err error) int {
	var invalidSplit *services.SplitValidationError
	switch {
	case errors.As(err, &invalidSplit):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrOrderLocked),
		errors.Is(err, shipment.ErrTransitionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrUserIsRequired),
		errors.Is(err, commands.ErrOrderNumberIsRequired),
		errors.Is(err, commands.ErrOrderLinesAreRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// detailsOf lists every message an error carries. Joined errors and split
// validation errors contribute one entry per problem.
func detailsOf(err error) []string {
	var invalidSplit *services.SplitValidationError
	if errors.As(err, &invalidSplit) {
		return invalidSplit.Messages
	}
	return strings.Split(err.Error(), "\n")
}

func fail(ctx echo.Context, message string, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request().Context(), message,
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(code, servers.Error{Code: code, Message: message})
	}

	details := detailsOf(err)
	return ctx.JSON(code, servers.Error{Code: code, Message: message, Details: &details})
}

func badRequest(ctx echo.Context, message string, err error) error {
	details := detailsOf(err)
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
		Details: &details,
	})
}

func invalidBody(ctx echo.Context, err error) error {
	return badRequest(ctx, "Invalid request body", err)
}
