package configuration

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

type delayTarget struct {
	Delay  profile.JobDelay `mapstructure:"delay"`
	Groups []string         `mapstructure:"groups"`
}

func TestJobDelayDecodeHook(t *testing.T) {
	tests := map[string]struct {
		document string
		expected time.Duration
		valid    bool
	}{
		"timecode": {
			document: `delay: "01:02:03:04"`,
			expected: 24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second,
			valid:    true,
		},
		"empty":          {document: `delay: ""`, valid: true},
		"not a timecode": {document: `delay: "tomorrow"`},
		"too many days":  {document: `delay: "200000:00:00:00"`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			v.SetConfigType("yaml")
			require.NoError(t, v.ReadConfig(strings.NewReader(tc.document+"\ngroups: \"arnold,redshift\"\n")))

			var target delayTarget
			err := v.Unmarshal(&target, decodeHooks()...)
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, target.Delay.Duration)
			assert.Equal(t, []string{"arnold", "redshift"}, target.Groups)
		})
	}
}
