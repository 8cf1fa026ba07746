package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
)

// APIResponse is the body of every non-payload reply: errors and
// acknowledgements alike.
type APIResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ValidationResponse is the wire form of a token validation verdict.
type ValidationResponse struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role,omitempty"`
}

func OK(msg string) APIResponse {
	return APIResponse{Message: msg, Success: true}
}

func Fail(msg string) APIResponse {
	return APIResponse{Message: msg, Success: false}
}

// ErrorHandler renders echo errors as APIResponse bodies.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		case nil:
			msg = http.StatusText(code)
		default:
			msg = fmt.Sprint(m)
		}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, Fail(msg))
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
	}
}
