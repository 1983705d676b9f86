package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/webkit/internal/errs"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "users",
				ConstraintName: "users_email_key",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_ALREADY_EXISTS",
			wantMessage: "A User with this Email already exists",
		},
		{
			name:        "foreign key violation",
			err:         &pgconn.PgError{Code: "23503", TableName: "images", ColumnName: "owner_id"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "IMAGE_NOT_FOUND",
			wantMessage: "The referenced Owner does not exist",
		},
		{
			name:        "not null violation",
			err:         &pgconn.PgError{Code: "23502", TableName: "images", ColumnName: "file_name"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "IMAGE_REQUIRED",
			wantMessage: "The File Name is required",
		},
		{
			name:        "connection failure",
			err:         &pgconn.PgError{Code: "08006"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "no rows",
			err:         fmt.Errorf("load image: %w", pgx.ErrNoRows),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Resource not found",
		},
		{
			name:        "unknown",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
		})
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("no", false)
	assert.Same(t, original, HandleError(original))
}

func TestNotNullFieldErrors(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(&pgconn.PgError{Code: "23502", ColumnName: "URL"}), &httpErr)

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "url", httpErr.Errors[0].Field)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.Equal(t, QueryCanceled, ErrCode(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "57014"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}
