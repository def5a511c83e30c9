package configuration

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

// EnvPrefix prefixes environment variables overriding settings keys,
// e.g. JOBINFO_PUBLISH_COLLECTJOBINFO_ENABLED.
const EnvPrefix = "JOBINFO"

// Load reads the settings documents at paths in order. Each document overrides the keys it sets in
// the documents before it, so studio-wide settings can be followed by project settings.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, errors.New("[configuration.Load] no settings file given")
	}
	v := newViper()
	for i, path := range paths {
		v.SetConfigFile(path)
		var err error
		if i == 0 {
			err = v.ReadInConfig()
		} else {
			err = v.MergeInConfig()
		}
		if err != nil {
			return nil, errors.WithStack(&farmerrors.ErrInvalidConfiguration{Source: path, Err: err})
		}
	}
	return decode(v, strings.Join(paths, ","))
}

// LoadReader reads a single settings document in the given format, e.g. "yaml" or "json".
func LoadReader(r io.Reader, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.WithStack(&farmerrors.ErrInvalidConfiguration{Err: err})
	}
	return decode(v, "")
}

// Watch calls onChange with the result of reloading paths whenever one of them is written.
// A reload that fails is passed as a nil Config and the error. No reload is reported once ctx is done.
func Watch(ctx context.Context, paths []string, onChange func(*Config, error)) {
	var mu sync.Mutex
	for _, path := range paths {
		w := viper.New()
		w.SetConfigFile(path)
		w.OnConfigChange(func(e fsnotify.Event) {
			mu.Lock()
			defer mu.Unlock()
			if ctx.Err() != nil {
				return
			}
			log.WithField("file", e.Name).Infof("Settings changed (%s), reloading", e.Op)
			onChange(Load(paths...))
		})
		w.WatchConfig()
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper, source string) (*Config, error) {
	var settings Settings
	if err := v.Unmarshal(&settings, decodeHooks()...); err != nil {
		return nil, errors.WithStack(&farmerrors.ErrInvalidConfiguration{Source: source, Err: err})
	}
	cfg, err := Convert(settings)
	if err != nil {
		return nil, errors.WithStack(&farmerrors.ErrInvalidConfiguration{Source: source, Err: err})
	}
	return cfg, nil
}
