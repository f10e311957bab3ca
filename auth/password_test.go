package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", digest)

	// Salted: hashing the same input twice yields different digests.
	digest2, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, digest, digest2)
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword("hunter22", digest))
	assert.False(t, CheckPassword("hunter23", digest))
	assert.False(t, CheckPassword("hunter22", "not-a-digest"))
}
