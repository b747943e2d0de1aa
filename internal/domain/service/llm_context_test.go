package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationProviderContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", OperationFromContext(ctx))
	assert.Equal(t, "unknown", ProviderFromContext(ctx))

	ctx = WithOperationProvider(ctx, " script_package ", "gemini")
	assert.Equal(t, "script_package", OperationFromContext(ctx))
	assert.Equal(t, "gemini", ProviderFromContext(ctx))

	// 空值不覆盖已有值
	ctx = WithProvider(ctx, "  ")
	assert.Equal(t, "gemini", ProviderFromContext(ctx))
}
