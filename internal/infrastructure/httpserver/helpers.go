package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quillblog/quill/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(c echo.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// serviceError maps domain failures onto HTTP status codes. Tagged generation
// failures each get their own status; the rate-limited variant also sets
// Retry-After on the response.
func serviceError(c echo.Context, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, ports.ErrInvalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if ge, ok := ports.AsGenerationError(err); ok {
		switch ge.Kind {
		case ports.GenerationRateLimited:
			retryAfter := int(ge.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			return echo.NewHTTPError(http.StatusTooManyRequests, "generation quota exhausted")
		case ports.GenerationTimeout:
			return echo.NewHTTPError(http.StatusGatewayTimeout, "content provider timed out")
		case ports.GenerationDuplicate:
			return echo.NewHTTPError(http.StatusConflict, ge.Error())
		case ports.GenerationEmpty, ports.GenerationMalformed:
			return echo.NewHTTPError(http.StatusBadGateway, ge.Error())
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
