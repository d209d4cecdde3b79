package reply

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"flipper/internal/domain"
	"flipper/pkg/contextx"
	"flipper/pkg/errcodes"
	"flipper/pkg/logx"
	"flipper/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var now = time.Now //nolint:gochecknoglobals

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Data writes a successful envelope.
func Data(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	JSON(ctx, w, statusCode, rest.Response{
		Success:   true,
		Data:      data,
		Timestamp: now().UTC(),
	})
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	code, ok := domain.GetCode(err)
	if !ok {
		code = errcodes.InternalServerError
	}

	status := statusCode(code)
	if status >= http.StatusInternalServerError {
		logger(ctx).Error("error", logx.Error(err))
	} else {
		logger(ctx).Warn("error", logx.Error(err))
	}

	JSON(ctx, w, status, rest.ErrorResponse{
		Success:   false,
		Error:     err.Error(),
		Code:      rest.ErrorCode(code.String()),
		SupportID: supportID(ctx),
		Timestamp: now().UTC(),
	})
}

func statusCode(code errcodes.ErrorCode) int {
	switch code {
	case errcodes.ValidationError, errcodes.InvalidListing, errcodes.InvalidPrice:
		return http.StatusBadRequest
	case errcodes.NotFound, errcodes.InventoryItemNotFound:
		return http.StatusNotFound
	case errcodes.MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errcodes.InvalidStatusTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
