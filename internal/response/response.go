// Package response implements the API's JSON envelope.  Every body
// carries an application-level code in "_code" next to the HTTP status:
// 0 for success, a non-zero code plus "message" for errors.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Code is an application-level response code.  The numbering is part of
// the wire contract and must not change.
type Code int

const (
	OK                 Code = 0x00 // 0
	NotAuthenticated   Code = 0x10 // 16
	AuthFailed         Code = 0x11 // 17
	SessionExpired     Code = 0x12 // 18
	InsufficientRights Code = 0x13 // 19
	InvalidIdentifiers Code = 0x14 // 20
	UnverifiedAccount  Code = 0x15 // 21
	InactiveAccount    Code = 0x16 // 22
	EmailAlreadyExists Code = 0x17 // 23
	NotFound           Code = 0x20 // 32
	InvalidData        Code = 0x21 // 33
	Exception          Code = 0x30 // 48
)

// Message returns the default human-readable message for the code.
func (c Code) Message() string {
	switch c {
	case OK:
		return "Success"
	case NotAuthenticated:
		return "You're not authenticated"
	case AuthFailed:
		return "Auth failed"
	case SessionExpired:
		return "Your session has expired"
	case InsufficientRights:
		return "Insufficient rights"
	case InvalidIdentifiers:
		return "Invalid identifiers"
	case UnverifiedAccount:
		return "Action denied for unverified account"
	case InactiveAccount:
		return "Action denied for inactive account"
	case EmailAlreadyExists:
		return "Email already exist"
	case NotFound:
		return "Not found"
	case InvalidData:
		return "Invalid data provided"
	case Exception:
		return "An unexpected error occurred"
	default:
		return "Unknown error"
	}
}

// HTTPStatus maps the code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case OK:
		return http.StatusOK
	case NotAuthenticated, SessionExpired:
		return http.StatusUnauthorized
	case AuthFailed, InvalidIdentifiers, EmailAlreadyExists, InvalidData:
		return http.StatusBadRequest
	case InsufficientRights, UnverifiedAccount, InactiveAccount:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes a success envelope: the payload entries merged with
// "_code": 0.
func JSON(c echo.Context, payload echo.Map) error {
	body := echo.Map{"_code": OK}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// List writes a success envelope wrapping a collection under "items".
func List(c echo.Context, items any) error {
	return JSON(c, echo.Map{"items": items})
}

// Error logs the message and writes an error envelope with the code's
// mapped HTTP status.  When msg is empty the code's default message is
// used.
func Error(c echo.Context, code Code, msg string) error {
	if msg == "" {
		msg = code.Message()
	}
	zap.L().Error(msg,
		zap.Int("code", int(code)),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
	)
	return c.JSON(code.HTTPStatus(), echo.Map{"_code": code, "message": msg})
}
