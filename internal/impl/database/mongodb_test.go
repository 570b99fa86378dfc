package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017", 5*time.Second)
	require.NoError(t, opts.Validate())

	require.NotNil(t, opts.RetryReads)
	require.NotNil(t, opts.RetryWrites)
	assert.True(t, *opts.RetryReads)
	assert.True(t, *opts.RetryWrites)
	require.NotNil(t, opts.Timeout)
	assert.Equal(t, 5*time.Second, *opts.Timeout)
}

func TestClientOptions_NoTimeout(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017", 0)

	assert.Nil(t, opts.Timeout)
	require.NotNil(t, opts.RetryWrites)
	assert.True(t, *opts.RetryWrites)
}
