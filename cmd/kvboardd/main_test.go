package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/kvboard/kvboard/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	internal.Version = "1.2.3"

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--version"}, &buf))
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestInvalidFlag(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"--does-not-exist"}, &buf))
}
