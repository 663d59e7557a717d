package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCauseAndMetadata(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("Navigate", CodeActionFailed, cause, map[string]any{
		MetaReason: "goto_failed",
		MetaStage:  StageNavigation,
	})

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Navigate: boom", err.Error())
	assert.Equal(t, CodeActionFailed, CodeOf(err))
	assert.Equal(t, "goto_failed", Reason(err))
}

func TestCodeOfThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFoundError("Describe", errors.New("no element")))

	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "not_found", Reason(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Empty(t, Reason(errors.New("plain")))
}

func TestInvalidReqErrorCarriesField(t *testing.T) {
	err := InvalidReqError("GetConfig", "OVERLAY_CLIPBOARD", errors.New("unknown mode"))

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OVERLAY_CLIPBOARD", appErr.Metadata[MetaField])
	assert.Equal(t, CodeInvalidArgument, appErr.Code)
}

func TestWrapErrorWithReasonWithoutCause(t *testing.T) {
	err := WrapErrorWithReason("Snapshot", CodeBrowserNotReady, "browser_not_ready")

	assert.Equal(t, "Snapshot: browser_not_ready", err.Error())
	assert.Equal(t, CodeBrowserNotReady, CodeOf(err))
}
