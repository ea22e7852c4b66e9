package config_test

import (
	"os"
	"testing"

	"github.com/hoover-rt/hoover/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithNoEnvironment(t *testing.T) {
	cfg := config.Load()
	assert.Equal(t, 1024*1024, cfg.DistBitvecPoolSize)
	assert.Equal(t, 1<<16, cfg.VertCachePreallocs)
	assert.Equal(t, 1<<12, cfg.VertCacheSegs)
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	require.NoError(t, os.Setenv("HVR_DIST_BITVEC_POOL_SIZE", "2048"))
	require.NoError(t, os.Setenv("HVR_VEC_CACHE_PREALLOCS", "42"))
	require.NoError(t, os.Setenv("HVR_VERT_CACHE_SEGS", "7"))
	defer func() {
		os.Unsetenv("HVR_DIST_BITVEC_POOL_SIZE")
		os.Unsetenv("HVR_VEC_CACHE_PREALLOCS")
		os.Unsetenv("HVR_VERT_CACHE_SEGS")
	}()

	cfg := config.Load()
	assert.Equal(t, 2048, cfg.DistBitvecPoolSize)
	assert.Equal(t, 42, cfg.VertCachePreallocs)
	assert.Equal(t, 7, cfg.VertCacheSegs)
}
