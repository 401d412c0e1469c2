package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserKey_KeepsCaseDistinctNames(t *testing.T) {
	assert.NotEqual(t, UserKey("Jacob"), UserKey("jacob"))
	assert.Equal(t, UserKey("jacob"), UserKey("jacob"))
}

func TestGenerationKey_IsSeparateFromValue(t *testing.T) {
	assert.Equal(t, "users:v1:jacob:gen", generationKey(UserKey("jacob")))
}
