package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetResourceUsage(t *testing.T) {
	usage := GetResourceUsage()

	assert.Greater(t, usage.Goroutines, 0)
	assert.GreaterOrEqual(t, usage.SysMB, usage.AllocMB)
	assert.GreaterOrEqual(t, usage.SystemMemUsedPercent, 0.0)
}
