// Package config loads the environment-variable knobs spec.md §6 names for
// the core's preallocated pools, the way junjiewwang-perf-analysis's
// pkg/config wires viper for its service configuration — SetDefault plus
// one BindEnv per knob, no config file required for a simulation to run.
package config

import "github.com/spf13/viper"

// Config holds the sizing knobs for HOOVER's preallocated pools.
type Config struct {
	// DistBitvecPoolSize is HVR_DIST_BITVEC_POOL_SIZE: bytes reserved for
	// local subcopies of bitmap rows.
	DistBitvecPoolSize int `mapstructure:"dist_bitvec_pool_size"`

	// VertCachePreallocs is HVR_VEC_CACHE_PREALLOCS: number of cache slots
	// preallocated.
	VertCachePreallocs int `mapstructure:"vert_cache_preallocs"`

	// VertCacheSegs is HVR_VERT_CACHE_SEGS: number of segmented-map segments
	// preallocated for the cache's id index.
	VertCacheSegs int `mapstructure:"vert_cache_segs"`
}

const (
	defaultDistBitvecPoolSize = 1024 * 1024
	defaultVertCachePreallocs = 1 << 16
	defaultVertCacheSegs      = 1 << 12
)

// Load reads the three knobs from the environment (HVR_DIST_BITVEC_POOL_SIZE,
// HVR_VEC_CACHE_PREALLOCS, HVR_VERT_CACHE_SEGS), falling back to defaults
// tuned for a small single-process demo run when unset.
func Load() *Config {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	return &Config{
		DistBitvecPoolSize: v.GetInt("dist_bitvec_pool_size"),
		VertCachePreallocs: v.GetInt("vert_cache_preallocs"),
		VertCacheSegs:      v.GetInt("vert_cache_segs"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dist_bitvec_pool_size", defaultDistBitvecPoolSize)
	v.SetDefault("vert_cache_preallocs", defaultVertCachePreallocs)
	v.SetDefault("vert_cache_segs", defaultVertCacheSegs)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("dist_bitvec_pool_size", "HVR_DIST_BITVEC_POOL_SIZE")
	_ = v.BindEnv("vert_cache_preallocs", "HVR_VEC_CACHE_PREALLOCS")
	_ = v.BindEnv("vert_cache_segs", "HVR_VERT_CACHE_SEGS")
}
