package reply

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain"
	"flipper/pkg/contextx"
	"flipper/pkg/errcodes"
	"flipper/pkg/rest"
)

func TestData(t *testing.T) {
	rq := require.New(t)

	w := httptest.NewRecorder()
	Data(context.Background(), w, http.StatusOK, []string{})

	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body map[string]any
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	rq.Equal(true, body["success"])
	rq.Equal([]any{}, body["data"])
	rq.Contains(body, "timestamp")
}

func TestError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    domain.NewError(errcodes.ValidationError, "bad body"),
			status: http.StatusBadRequest,
			code:   "ValidationError",
		},
		{
			name:   "wrapped not found",
			err:    fmt.Errorf("agent.MarkSold: %w", domain.NewError(errcodes.InventoryItemNotFound, "missing")),
			status: http.StatusNotFound,
			code:   "InventoryItemNotFound",
		},
		{
			name:   "conflict",
			err:    domain.NewError(errcodes.InvalidStatusTransition, "sold"),
			status: http.StatusConflict,
			code:   "InvalidStatusTransition",
		},
		{
			name:   "ledger failure",
			err:    domain.WrapError(errors.New("io"), errcodes.LedgerWriteFailed, "write"),
			status: http.StatusInternalServerError,
			code:   "LedgerWriteFailed",
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "InternalServerError",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			w := httptest.NewRecorder()
			Error(ctx, w, tc.err)

			rq.Equal(tc.status, w.Code)

			var body rest.ErrorResponse
			rq.NoError(json.Unmarshal(w.Body.Bytes(), &body))
			rq.False(body.Success)
			rq.Equal(rest.ErrorCode(tc.code), body.Code)
			rq.Equal(tc.err.Error(), body.Error)
			rq.Equal("trace-1", body.SupportID)
		})
	}
}
