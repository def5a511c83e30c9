// Package enums provides the choices offered for enumerated settings fields.
// Choices are only needed when presenting settings; resolution never consults them.
package enums

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

const (
	FieldOverrides           = "overrides"
	FieldTaskTypes           = "task_types"
	FieldTileAssemblerPlugin = "tile_assembler_plugin"
	FieldFusionPlugin        = "fusion_plugin"
)

// DefaultTaskTypes are offered for task_types when no project task types are known.
var DefaultTaskTypes = []string{
	"Generic", "Art", "Modeling", "Texture", "Lookdev", "Rigging", "Edit", "Layout",
	"Setdress", "Animation", "FX", "Lighting", "Paint", "Compositing", "Roto", "Matchmove",
}

// Choice is a single allowed value and the label shown for it.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Resolver returns the choices for one field.
type Resolver func() []Choice

// Registry maps a settings field to the resolver of its choices.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry returns a registry for the built-in fields, offering taskTypes for task_types.
func NewRegistry(taskTypes []string) *Registry {
	taskTypes = slices.Clone(taskTypes)
	return &Registry{
		resolvers: map[string]Resolver{
			FieldOverrides: Overrides,
			FieldTaskTypes: func() []Choice {
				return valuesAsChoices(taskTypes)
			},
			FieldTileAssemblerPlugin: TileAssemblerPlugins,
			FieldFusionPlugin:        FusionPlugins,
		},
	}
}

// Register adds or replaces the resolver for field.
func (r *Registry) Register(field string, resolver Resolver) {
	r.resolvers[field] = resolver
}

// Fields returns the registered field keys in sorted order.
func (r *Registry) Fields() []string {
	fields := maps.Keys(r.resolvers)
	slices.Sort(fields)
	return fields
}

// Choices returns the choices for field.
func (r *Registry) Choices(field string) ([]Choice, error) {
	resolver, ok := r.resolvers[field]
	if !ok {
		return nil, errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "field",
			Value:   field,
			Message: "no choices are defined for this field",
		})
	}
	return resolver(), nil
}

// Overrides offers every canonical override key.
func Overrides() []Choice {
	choices := make([]Choice, len(profile.CanonicalOverrideKeys))
	for i, key := range profile.CanonicalOverrideKeys {
		choices[i] = Choice{Value: string(key), Label: key.Label()}
	}
	return choices
}

func TileAssemblerPlugins() []Choice {
	return []Choice{
		{Value: "DraftTileAssembler", Label: "Draft Tile Assembler"},
	}
}

func FusionPlugins() []Choice {
	return []Choice{
		{Value: "Fusion", Label: "Fusion"},
		{Value: "FusionCmd", Label: "FusionCmd"},
	}
}

func valuesAsChoices(values []string) []Choice {
	choices := make([]Choice, len(values))
	for i, v := range values {
		choices[i] = Choice{Value: v, Label: v}
	}
	return choices
}
