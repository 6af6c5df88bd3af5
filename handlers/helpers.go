package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var validate = validator.New()

// errKind is the closed set of failure categories handlers branch on.
// Driver and GORM errors are mapped here, at one boundary, instead of
// call sites inspecting message text.
type errKind int

const (
	errUnknown errKind = iota
	errNotFound
	errDuplicate
)

func kindOf(err error) errKind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errDuplicate
	default:
		return errUnknown
	}
}

// dbError renders a storage failure in the standard shape. Not-found is
// deliberately absent here: list endpoints treat it as an empty state
// and Get endpoints handle it before calling this.
func dbError(c echo.Context, err error) error {
	switch kindOf(err) {
	case errDuplicate:
		return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	case errNotFound:
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
}

func validationError(c echo.Context, err error) error {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " check"
		}
	}
	return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// identity set by the JWT middleware
func getUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func getRole(c echo.Context) string {
	r, _ := c.Get("role").(string)
	return r
}

func getPrn(c echo.Context) string {
	p, _ := c.Get("prn").(string)
	return p
}
