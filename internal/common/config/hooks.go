package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CustomHooks is passed to viper.Unmarshal.
var CustomHooks = WithHooks()

// WithHooks composes extra, which run first, with the default hooks.
// Viper keeps only the last DecodeHook option, so all hooks go into a single one.
func WithHooks(extra ...mapstructure.DecodeHookFunc) []viper.DecoderConfigOption {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(extra)+2)
	hooks = append(hooks, extra...)
	hooks = append(hooks,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	return []viper.DecoderConfigOption{
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...)),
	}
}
