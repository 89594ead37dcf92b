package deepfriprover

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("underlying failure")
	err := wrapf(ErrInvalidWidth, cause, "width %d is unsupported", 12)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "width 12 is unsupported")
}

func TestErrorIsComparesByCode(t *testing.T) {
	a := wrapf(ErrInvalidArity, nil, "bad arity")
	b := wrapf(ErrInvalidArity, nil, "different message, same code")
	c := wrapf(ErrInvalidWidth, nil, "different code")

	require.True(t, a.Is(b))
	require.False(t, a.Is(c))
}

func TestParamsForWidthReturnsTypedError(t *testing.T) {
	_, err := ParamsForWidth(99)
	require.Error(t, err)

	var typed *Error
	require.True(t, errors.As(err, &typed))
	require.Equal(t, ErrInvalidWidth, typed.Code)
}
