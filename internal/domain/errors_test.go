package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"flipper/internal/domain"
	"flipper/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	cause := errors.New("connection refused")
	inner := domain.WrapError(cause, errcodes.StorageUnavailable, "save state")
	outer := domain.WrapError(fmt.Errorf("agent.Scan: %w", inner), errcodes.LedgerWriteFailed, "record purchase")

	rq.Equal("save state: connection refused", inner.Error())
	rq.ErrorIs(outer, cause)
	rq.True(domain.IsAppError(outer))

	code, ok := domain.GetCode(outer)
	rq.True(ok)
	rq.Equal(errcodes.LedgerWriteFailed, code)

	rq.True(domain.HasCode(outer, errcodes.StorageUnavailable))
	rq.False(domain.HasCode(outer, errcodes.NotFound))
}

func TestGetCodePlainError(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	_, ok := domain.GetCode(errors.New("boom"))
	rq.False(ok)
	rq.False(domain.IsAppError(nil))
	rq.Equal("route not found", domain.NewError(errcodes.NotFound, "route not found").Error())
}
