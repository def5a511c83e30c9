package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

type hookTarget struct {
	Groups []string      `mapstructure:"groups"`
	Wait   time.Duration `mapstructure:"wait"`
	Mode   string        `mapstructure:"mode"`
}

func TestCustomHooks(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
groups: "arnold,redshift"
wait: 5s
`)))

	var target hookTarget
	require.NoError(t, v.Unmarshal(&target, CustomHooks...))

	assert.Equal(t, []string{"arnold", "redshift"}, target.Groups)
	assert.Equal(t, 5*time.Second, target.Wait)
}

func TestWithHooks_ExtraHooksRunFirst(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
mode: fast
wait: "1m"
`)))

	upper := mapstructure.DecodeHookFuncKind(func(f, t reflect.Kind, data interface{}) (interface{}, error) {
		if f != reflect.String || t != reflect.String {
			return data, nil
		}
		return strings.ToUpper(data.(string)), nil
	})
	var target hookTarget
	require.NoError(t, v.Unmarshal(&target, WithHooks(upper)...))

	assert.Equal(t, "FAST", target.Mode)
	assert.Equal(t, time.Minute, target.Wait)
}

func TestCustomHooks_InvalidDuration(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`wait: "tomorrow"`)))

	var target hookTarget
	assert.Error(t, v.Unmarshal(&target, CustomHooks...))
}

type validated struct {
	Priority int      `mapstructure:"priority" validate:"gte=0,lte=100"`
	Name     string   `mapstructure:"name" validate:"required"`
	Patterns []string `mapstructure:"patterns" validate:"dive,regexp"`
}

func TestNewValidator(t *testing.T) {
	tests := map[string]struct {
		value  validated
		fields []string
	}{
		"valid": {
			value: validated{Priority: 50, Name: "a", Patterns: []string{".*beauty.*"}},
		},
		"priority too high": {
			value:  validated{Priority: 101, Name: "a"},
			fields: []string{"priority"},
		},
		"missing name and bad regexp": {
			value:  validated{Priority: 1, Patterns: []string{"(unclosed"}},
			fields: []string{"name", "patterns[0]"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := FieldErrors(NewValidator().Struct(tc.value))
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, field := range tc.fields {
				assert.Contains(t, err.Error(), field)
			}
			var invalid *farmerrors.ErrInvalidArgument
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestFieldErrors_PassesOtherErrorsThrough(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, err, FieldErrors(err))
	assert.NoError(t, FieldErrors(nil))
}

func TestLogValidationErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	err := FieldErrors(NewValidator().Struct(validated{Priority: 101}))
	LogValidationErrors(err)
	require.Len(t, hook.Entries, 2)
	assert.Contains(t, hook.Entries[0].Message, "ConfigError: ")

	hook.Reset()
	LogValidationErrors(errors.New("unreadable"))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "ConfigError: unreadable", hook.LastEntry().Message)
}
