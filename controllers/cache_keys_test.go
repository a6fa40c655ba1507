package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostDetailKeysArePrefixFree(t *testing.T) {
	// Invalidation works by key prefix, so no post's key may prefix another's.
	assert.False(t, strings.HasPrefix(postDetailKey("10"), postDetailKey("1")))
	assert.False(t, strings.HasPrefix(postDetailKey("123"), postDetailKey("12")))
	assert.Equal(t, postDetailKey("7"), postDetailKey("7"))
}
