package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Length(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, NewID())
}

func TestChildID_DerivesFromParent(t *testing.T) {
	ctx := WithID(context.Background(), "abcd1234")

	first := ChildID(ctx)
	second := ChildID(ctx)

	assert.Regexp(t, `^abcd1234\.[0-9a-f]{8}$`, first)
	assert.Regexp(t, `^abcd1234\.[0-9a-f]{8}$`, second)
	assert.NotEqual(t, first, second)
}

func TestChildID_NoParent(t *testing.T) {
	assert.Len(t, ChildID(context.Background()), 8)
}

func TestWithID_RoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abcd1234")
	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abcd1234", id)
}

func TestID_Absent(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)
}

func TestHandler_InjectsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(WithID(context.Background(), "cafe0001"), "hello")
	assert.Contains(t, buf.String(), "correlation_id=cafe0001")

	buf.Reset()
	logger.InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "correlation_id")
}
