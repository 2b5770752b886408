package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
)

func TestFormErrorMessage(t *testing.T) {
	t.Run("should return the bare message without context", func(t *testing.T) {
		err := NewFormError(KindValidationFailed, "value out of range")
		assert.Equal(t, "value out of range", err.Error())
	})

	t.Run("should prefix the field", func(t *testing.T) {
		err := NewFormError(KindValidationFailed, "value out of range").AddField("title")
		assert.Equal(t, "field 'title': value out of range", err.Error())
	})

	t.Run("should chain container, row, field and rule", func(t *testing.T) {
		err := NewFormError(KindValidationFailed, "value out of range").
			AddField("caption").
			AddContainer("gallery").
			AddRowIndex(2).
			AddRule("max")
		assert.Equal(t, "container 'gallery' row 2 -> field 'caption' -> rule 'max': value out of range", err.Error())
	})
}

func TestNewFormErrorf(t *testing.T) {
	t.Run("should format arguments", func(t *testing.T) {
		err := NewFormErrorf(KindUnknownFieldType, "field type '%s' is not registered", "star-rating")
		assert.Equal(t, "field type 'star-rating' is not registered", err.Error())
	})

	t.Run("should accept the wrap directive", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := NewFormErrorf(KindStoreFailure, "write failed: %w", cause)
		assert.Equal(t, "write failed: disk full", err.Error())
	})
}

func TestWrapFormError(t *testing.T) {
	t.Run("should wrap a plain error with the kind", func(t *testing.T) {
		err := WrapFormError(KindStoreFailure, stderrors.New("disk full"))
		assert.Equal(t, KindStoreFailure, err.Kind)
		assert.Equal(t, "disk full", err.Message)
	})

	t.Run("should pass an existing form error through unchanged", func(t *testing.T) {
		original := NewFormError(KindMaxNestingExceeded, "too deep")
		wrapped := WrapFormError(KindStoreFailure, original)
		assert.Same(t, original, wrapped)
		assert.Equal(t, KindMaxNestingExceeded, wrapped.Kind)
	})

	t.Run("should return nil for a nil error", func(t *testing.T) {
		assert.Nil(t, WrapFormError(KindStoreFailure, nil))
	})
}

func TestToHTTPError(t *testing.T) {
	t.Run("should map store failures to 500", func(t *testing.T) {
		httpErr := NewFormError(KindStoreFailure, "disk full").ToHTTPError()
		assert.Equal(t, http.StatusInternalServerError, httperror.GetStatusCode(httpErr))
	})

	t.Run("should map everything else to 400", func(t *testing.T) {
		httpErr := NewFormError(KindValidationFailed, "bad value").AddField("title").ToHTTPError()
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(httpErr))
		assert.Equal(t, string(KindValidationFailed), httpErr.Meta["kind"])
		assert.Equal(t, "title", httpErr.Meta["field"])
	})
}

func TestIsKind(t *testing.T) {
	err := NewFormError(KindMaxNestingExceeded, "too deep")

	assert.True(t, IsFormError(err))
	assert.True(t, IsKind(err, KindMaxNestingExceeded))
	assert.False(t, IsKind(err, KindStoreFailure))
	assert.False(t, IsKind(stderrors.New("plain"), KindStoreFailure))
}
