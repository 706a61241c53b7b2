package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDisabled(t *testing.T) {
	rdb, err := Connect(context.Background(), "", "", 3, nil)
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect(context.Background(), "127.0.0.1:1", "", 1, nil)
	assert.Error(t, err)
}
