package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"sentinel", NewExitError(ErrDocumentsDiffer, ExitUser), "frontmatter differs"},
		{"fmt wrapped", NewExitError(fmt.Errorf("post.md: %w", ErrValidationFailed), ExitUser), "post.md: validation failed"},
		{"no cause", NewExitError(nil, ExitSystem), "exit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_Chain(t *testing.T) {
	err := Wrap(NewUserError(Wrapf(ErrValidationFailed, "%d error(s)", 2), "fix the listed keys"), "validate")

	assert.True(t, Is(err, ErrValidationFailed))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, "validate: 2 error(s): validation failed", err.Error())

	var exitErr *ExitError
	require.True(t, As(err, &exitErr))
	assert.Equal(t, ExitUser, exitErr.Code)
	assert.Equal(t, "fix the listed keys", exitErr.Suggestion)

	assert.False(t, errors.Is(NewExitError(nil, ExitUser), ErrNotFound))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitSystem},
		{"bare sentinel", ErrInvalidArgument, ExitSystem},
		{"user error", NewUserError(ErrValidationFailed, ""), ExitUser},
		{"wrapped user error", Wrapf(NewUserError(ErrNotFound, ""), "reading %s", "a.md"), ExitUser},
		{"system error", NewSystemError(errors.New("disk"), ""), ExitSystem},
		{"config error", NewConfigError(ErrInvalidConfig), ExitUser},
		{"custom code", NewExitErrorWithSuggestion(errors.New("x"), 7, ""), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestSuggestion(t *testing.T) {
	assert.Equal(t, "check the path", Suggestion(Wrap(NewUserError(ErrNotFound, "check the path"), "extract")))
	assert.Equal(t, "Check fmgen.yaml or pass --config", Suggestion(NewConfigError(ErrInvalidConfig)))
	assert.Empty(t, Suggestion(errors.New("plain")))
	assert.Empty(t, Suggestion(nil))
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	err := Wrapf(ErrNotFound, "key %q", "title")
	assert.Equal(t, `key "title": not found`, err.Error())
	assert.True(t, Is(err, ErrNotFound))

	assert.Equal(t, "bad 3", Newf("bad %d", 3).Error())

	marked := Mark(New("schema mismatch"), ErrValidationFailed)
	assert.True(t, Is(marked, ErrValidationFailed))
	assert.Equal(t, "schema mismatch", marked.Error())

	joined := Join(ErrNotFound, nil, ErrInvalidArgument)
	assert.True(t, Is(joined, ErrNotFound))
	assert.True(t, Is(joined, ErrInvalidArgument))
	assert.NoError(t, Join(nil, nil))
}
