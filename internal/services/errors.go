package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/yungbote/foodgram-backend/internal/pkg/errors"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
)

func validationError(code, format string, args ...interface{}) error {
	return apierr.New(http.StatusBadRequest, code, fmt.Errorf("%w: %s", errs.ErrValidation, fmt.Sprintf(format, args...)))
}

func notFoundError(code, format string, args ...interface{}) error {
	return apierr.New(http.StatusNotFound, code, fmt.Errorf("%w: %s", errs.ErrNotFound, fmt.Sprintf(format, args...)))
}

func conflictError(code, format string, args ...interface{}) error {
	return apierr.New(http.StatusConflict, code, fmt.Errorf("%w: %s", errs.ErrConflict, fmt.Sprintf(format, args...)))
}

func permissionError(code, format string, args ...interface{}) error {
	return apierr.New(http.StatusForbidden, code, fmt.Errorf("%w: %s", errs.ErrPermissionDenied, fmt.Sprintf(format, args...)))
}

func unauthorizedError() error {
	return apierr.New(http.StatusUnauthorized, "not_authenticated", errs.ErrUnauthorized)
}

func internalError(code string, err error) error {
	return apierr.New(http.StatusInternalServerError, code, err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// isMissingReference reports a foreign key violation, i.e. the referenced row vanished mid-transaction.
func isMissingReference(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503" // foreign_key_violation
}

// passThrough keeps *apierr.Error values intact and wraps anything else as a 500.
func passThrough(code string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	return internalError(code, err)
}

// outcome labels err for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrConflict):
		return "conflict"
	case errors.Is(err, errs.ErrNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
