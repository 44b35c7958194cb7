package middlewares_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sendlater/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("formats panic value", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "panic: boom", (&middlewares.PanicError{Value: "boom"}).Error())
		require.Equal(t, "panic: 42", (&middlewares.PanicError{Value: 42}).Error())
	})

	t.Run("unwraps error values", func(t *testing.T) {
		t.Parallel()

		err := &middlewares.PanicError{Value: io.ErrUnexpectedEOF}
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.NoError(t, (&middlewares.PanicError{Value: "text"}).Unwrap())
	})

	t.Run("found through wrapping", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("handler: %w", &middlewares.PanicError{Value: "x"})
		pe, ok := middlewares.AsPanicError(wrapped)
		require.True(t, ok)
		require.Equal(t, "x", pe.Value)

		_, ok = middlewares.AsPanicError(errors.New("plain"))
		require.False(t, ok)
	})
}
