package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

// handleError maps handler errors to JSON responses. Structured errors
// carry their own status; echo's own errors (unknown route, bad method)
// keep their code and get the closest category.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		resp := apperrors.ErrorResponse{
			Error: fmt.Sprintf("%v", httpErr.Message),
			Type:  typeForStatus(httpErr.Code),
		}
		if err := c.JSON(httpErr.Code, resp); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	structured := apperrors.AsStructuredError(err)
	if err := c.JSON(structured.HTTPStatus(), structured.ToResponse()); err != nil {
		c.Logger().Error(err)
	}
}

func typeForStatus(status int) apperrors.ErrorType {
	switch status {
	case http.StatusBadRequest:
		return apperrors.TypeValidation
	case http.StatusNotFound:
		return apperrors.TypeNotFound
	default:
		return apperrors.TypeInternal
	}
}
