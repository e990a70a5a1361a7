package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDFormat(t *testing.T) {
	id := GenerateID("article")

	parts := strings.SplitN(id, "_", 3)
	assert.Len(t, parts, 3)
	assert.Equal(t, "article", parts[0])
	assert.Len(t, parts[2], 6)
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := GenerateID("event")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
