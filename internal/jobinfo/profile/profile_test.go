package profile

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

func TestParseOverrideKey(t *testing.T) {
	for _, k := range CanonicalOverrideKeys {
		parsed, err := ParseOverrideKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.Label())
	}

	parsed, err := ParseOverrideKey(" priority ")
	require.NoError(t, err)
	assert.Equal(t, OverridePriority, parsed)

	for _, bad := range []string{"frames", "Priority", "machine_limit", ""} {
		_, err := ParseOverrideKey(bad)
		var e *farmerrors.ErrUnsupportedOverrideKey
		assert.True(t, errors.As(err, &e), bad)
	}
}

func TestParseOverrideSet(t *testing.T) {
	s, err := ParseOverrideSet([]string{"priority", "department", "", "priority"})
	require.NoError(t, err)
	assert.Equal(t, []OverrideKey{OverrideDepartment, OverridePriority}, s.Keys())

	_, err = ParseOverrideSet([]string{"priority", "use_gpu"})
	assert.Error(t, err)
}

func TestOverrideSet_Intersect(t *testing.T) {
	a := NewOverrideSet(OverridePriority, OverrideChunkSize, OverrideGroup)
	b := NewOverrideSet(OverridePriority, OverrideGroup, OverrideDepartment)
	assert.Equal(t, []OverrideKey{OverrideGroup, OverridePriority}, a.Intersect(b).Keys())
	assert.Empty(t, a.Intersect(NewOverrideSet()).Keys())
	assert.True(t, a.Intersect(b).Equal(b.Intersect(a)))
}

func TestJobDelay(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected time.Duration
		valid    bool
	}{
		"empty":          {input: "", expected: 0, valid: true},
		"one hour":       {input: "00:01:00:00", expected: time.Hour, valid: true},
		"mixed":          {input: "02:03:04:05", expected: 2*day + 3*time.Hour + 4*time.Minute + 5*time.Second, valid: true},
		"many days":      {input: "45:00:00:00", expected: 45 * day, valid: true},
		"too few parts":  {input: "01:00:00", valid: false},
		"not a number":   {input: "aa:00:00:00", valid: false},
		"hours overflow": {input: "00:24:00:00", valid: false},
		"negative":       {input: "00:-1:00:00", valid: false},
		"days overflow":  {input: "200000:00:00:00", valid: false},
		"max days":       {input: "106751:00:00:00", expected: 106751 * day, valid: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := ParseJobDelay(tc.input)
			if !tc.valid {
				var e *farmerrors.ErrInvalidArgument
				assert.True(t, errors.As(err, &e))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.Duration)
			if tc.input != "" {
				assert.Equal(t, tc.input, d.String())
			}
		})
	}
}

func TestJobDelay_Text(t *testing.T) {
	var d JobDelay
	require.NoError(t, d.UnmarshalText([]byte("00:00:30:00")))
	assert.Equal(t, 30*time.Minute, d.Duration)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00:00:30:00", string(text))

	text, err = JobDelay{}.MarshalText()
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestProfile_Specificity(t *testing.T) {
	assert.Equal(t, 0, (&Profile{}).Specificity())
	assert.Equal(t, 1, (&Profile{HostNames: []string{"maya"}}).Specificity())
	assert.Equal(t, 3, (&Profile{
		HostNames: []string{"maya"},
		TaskTypes: []string{"Lighting"},
		TaskNames: []string{"lgt01"},
	}).Specificity())
}

func TestJobParameters_Clone(t *testing.T) {
	p := JobParameters{LimitGroups: []string{"a"}, MachineList: []string{"node1"}}
	c := p.Clone()
	c.LimitGroups[0] = "b"
	c.MachineList[0] = "node2"
	assert.Equal(t, "a", p.LimitGroups[0])
	assert.Equal(t, "node1", p.MachineList[0])
}

func TestJobContext_Exposed(t *testing.T) {
	assert.Len(t, JobContext{}.Exposed().Keys(), len(CanonicalOverrideKeys))
	ctx := JobContext{ExposedOverrides: NewOverrideSet(OverridePriority)}
	assert.Equal(t, []OverrideKey{OverridePriority}, ctx.Exposed().Keys())
}

func TestIsFarmProductType(t *testing.T) {
	assert.True(t, IsFarmProductType("render"))
	assert.True(t, IsFarmProductType("usdrender"))
	assert.False(t, IsFarmProductType("model"))
	assert.False(t, IsFarmProductType(""))
}
