package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := NotFound("JRN_001", "journal not found")

	assert.Equal(t, KindNotFound, KindOf(base))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("load: %w", base)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	sentinel := Forbidden("ART_003", "not a journal writer")
	wrapped := sentinel.WithMessage("only ADMIN or WRITER may publish")

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, Forbidden("ART_004", "x")))
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("IMG_005", "storage delete failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
