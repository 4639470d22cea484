package wsbridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDial_RejectsMalformedURL(t *testing.T) {
	_, err := Dial(context.Background(), nil, Config{URL: "://not-a-url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid relay URL")
}
