package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExitClosesConfig(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	rcc := &rootCmdConfig{logger: zap.NewNop()}
	ctx := rcc.Context()
	require.NoError(t, ctx.Err())

	rcc.Exit(3)
	assert.Equal(t, 3, code)
	assert.Error(t, ctx.Err())
}
