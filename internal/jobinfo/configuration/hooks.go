package configuration

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/renderfarm/jobinfo/internal/common/config"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// decodeHooks are used to decode settings documents.
func decodeHooks() []viper.DecoderConfigOption {
	return config.WithHooks(ProfileDefaultsHook(), JobDelayDecodeHook())
}

// JobDelayDecodeHook parses dd:hh:mm:ss timecodes into profile.JobDelay.
func JobDelayDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != reflect.TypeOf(profile.JobDelay{}) {
			return data, nil
		}
		if f.Kind() != reflect.String {
			return data, nil
		}
		return profile.ParseJobDelay(data.(string))
	}
}
