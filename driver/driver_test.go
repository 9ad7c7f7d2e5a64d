package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFailed(t *testing.T) {
	assert.False(t, StatusOK.Failed())
	assert.False(t, StatusParamsDirty.Failed(), "positive codes are success variants")
	assert.False(t, StatusEngineNotRunning.Failed())

	assert.True(t, StatusNoClient.Failed())
	assert.True(t, StatusNoServer.Failed())
	assert.True(t, StatusUnknownParameter.Failed())
	assert.True(t, StatusStructureMismatch.Failed())
}
