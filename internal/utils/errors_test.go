package utils_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

func TestNew(t *testing.T) {
	baseErr := errors.New("base error")
	appErr := utils.New(baseErr, http.StatusBadRequest, "Error message")

	assert.Equal(t, "Error message", appErr.Error())
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.ErrorIs(t, appErr, baseErr)
}

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		message string
		want    string
	}{
		{name: "With field", field: "name", message: "is required", want: "name: is required"},
		{name: "Without field", field: "", message: "bad input", want: "bad input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.NewValidationError(tt.field, tt.message)
			assert.Equal(t, tt.want, appErr.Error())
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.ErrorIs(t, appErr, utils.ErrValidation)
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	cause := errors.New("no economy table")
	appErr := utils.NewNotFoundError(constants.MsgNoEconomyTable, cause)

	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "No table", appErr.Message)
	assert.ErrorIs(t, appErr, utils.ErrNotFound)
	assert.ErrorIs(t, appErr, cause)

	bare := utils.NewNotFoundError(constants.MsgPlayerNotFound, nil)
	assert.ErrorIs(t, bare, utils.ErrNotFound)
}

func TestNewDatabaseError(t *testing.T) {
	driverErr := &mysql.MySQLError{Number: 1146, Message: "Table 'eco.accounts' doesn't exist"}
	appErr := utils.NewDatabaseError(fmt.Errorf("query stats: %w", driverErr))

	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "doesn't exist")
	assert.Contains(t, appErr.DevInfo, "mysql 1146")
	assert.ErrorIs(t, appErr, utils.ErrDatabase)
}

func TestNewInternalServerError(t *testing.T) {
	appErr := utils.NewInternalServerError(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, constants.MsgInternalServerError, appErr.Message)
	assert.Equal(t, "boom", appErr.DevInfo)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, utils.IsNotFoundError(utils.NewNotFoundError("Not found", nil)))
	assert.True(t, utils.IsNotFoundError(fmt.Errorf("wrapped: %w", utils.ErrNotFound)))
	assert.False(t, utils.IsNotFoundError(errors.New("other")))
	assert.False(t, utils.IsNotFoundError(utils.NewInternalServerError(nil)))
}

func TestNewRateLimitError(t *testing.T) {
	appErr := utils.NewRateLimitError()

	assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)
	assert.Equal(t, constants.MsgRateLimited, appErr.Message)
	assert.ErrorIs(t, appErr, utils.ErrRateLimited)
}

func TestParseError(t *testing.T) {
	existing := utils.NewNotFoundError("No table", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantDev    string
	}{
		{name: "Already AppError", err: fmt.Errorf("wrap: %w", existing), wantStatus: http.StatusNotFound, wantMsg: "No table"},
		{name: "Not found sentinel", err: utils.ErrNotFound, wantStatus: http.StatusNotFound, wantMsg: constants.MsgPlayerNotFound},
		{name: "Context deadline is a server error", err: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError, wantMsg: constants.MsgInternalServerError},
		{
			name:       "MySQL error",
			err:        &mysql.MySQLError{Number: 1054, Message: "Unknown column 'money'"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Error 1054: Unknown column 'money'",
			wantDev:    "mysql 1054",
		},
		{
			name:       "PostgreSQL error",
			err:        &pq.Error{Code: "42P01", Message: `relation "accounts" does not exist`},
			wantStatus: http.StatusInternalServerError,
			wantDev:    "postgres 42P01",
		},
		{
			name:       "Generic error",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    constants.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.ParseError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
			if tt.wantDev != "" {
				assert.Contains(t, appErr.DevInfo, tt.wantDev)
			}
		})
	}

	assert.Nil(t, utils.ParseError(nil))
}
