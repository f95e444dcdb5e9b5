package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrap(ErrTimeout, "wait for invocation")

	assert.Contains(t, wrapped.Error(), "wait for invocation")
	assert.True(t, IsTimeoutError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "attempt %d", 3)

	assert.Contains(t, wrapped.Error(), "attempt 3")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("missing %s", "BlueprintArn")

	assert.Equal(t, "missing BlueprintArn", err.Error())
	assert.True(t, Is(err, ErrInvalidRequest))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("no stack outputs"), "deploy the stack first")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "deploy the stack first", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsTimeoutError(nil))
	assert.Empty(t, Diagnostic(nil))
}

func TestDiagnostic(t *testing.T) {
	err := WithHint(Wrap(ErrNotFound, "BlueprintArn"), "run cdk deploy")
	err = WithHint(err, "or pass --blueprint-arn")

	out := Diagnostic(err)
	assert.Contains(t, out, "BlueprintArn: not found")
	assert.Contains(t, out, "\n  hint: run cdk deploy")
	assert.Contains(t, out, "\n  hint: or pass --blueprint-arn")
}
