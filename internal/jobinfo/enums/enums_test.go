package enums

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

func TestRegistry_Choices(t *testing.T) {
	registry := NewRegistry([]string{"Lighting", "FX"})
	tests := map[string]struct {
		field    string
		expected []Choice
	}{
		"task types": {
			field:    FieldTaskTypes,
			expected: []Choice{{Value: "Lighting", Label: "Lighting"}, {Value: "FX", Label: "FX"}},
		},
		"tile assembler": {
			field:    FieldTileAssemblerPlugin,
			expected: []Choice{{Value: "DraftTileAssembler", Label: "Draft Tile Assembler"}},
		},
		"fusion plugin": {
			field:    FieldFusionPlugin,
			expected: []Choice{{Value: "Fusion", Label: "Fusion"}, {Value: "FusionCmd", Label: "FusionCmd"}},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			choices, err := registry.Choices(tc.field)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, choices)
		})
	}
}

func TestRegistry_Overrides(t *testing.T) {
	choices, err := NewRegistry(DefaultTaskTypes).Choices(FieldOverrides)
	require.NoError(t, err)
	require.Len(t, choices, 10)
	assert.Equal(t, Choice{Value: "department", Label: "Department"}, choices[0])
	assert.Equal(t, Choice{Value: "machine_list_deny", Label: "Machine List is a Deny"}, choices[9])
}

func TestRegistry_UnknownField(t *testing.T) {
	_, err := NewRegistry(nil).Choices("frames")
	var e *farmerrors.ErrInvalidArgument
	assert.True(t, errors.As(err, &e))
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register("renderer", func() []Choice {
		return []Choice{{Value: "arnold", Label: "Arnold"}}
	})
	assert.Equal(t, []string{"fusion_plugin", "overrides", "renderer", "task_types", "tile_assembler_plugin"}, registry.Fields())

	choices, err := registry.Choices(FieldTaskTypes)
	require.NoError(t, err)
	assert.Empty(t, choices)
}
