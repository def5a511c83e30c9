// Package overrides decides which job parameters an artist may edit at publish time and converts the
// values the artist entered into typed job parameters.
package overrides

import (
	"strings"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Project returns the overrides of p that the calling host is able to expose.
// A nil profile exposes nothing.
func Project(p *profile.Profile, exposed profile.OverrideSet) profile.OverrideSet {
	if p == nil {
		return profile.NewOverrideSet()
	}
	return p.Overrides.Intersect(exposed)
}

// Kind is the widget type the publisher should use for an override.
type Kind string

const (
	KindNumber Kind = "number"
	KindText   Kind = "text"
	KindBool   Kind = "bool"
)

// AttributeDefinition describes one editable field shown to the artist.
type AttributeDefinition struct {
	Key         profile.OverrideKey `json:"key"`
	Label       string              `json:"label"`
	Kind        Kind                `json:"kind"`
	Default     interface{}         `json:"default"`
	Placeholder string              `json:"placeholder,omitempty"`
	Minimum     *int                `json:"minimum,omitempty"`
	Maximum     *int                `json:"maximum,omitempty"`
}

var (
	minChunkSize = 1
	maxChunkSize = 1000
	minPriority  = 0
	maxPriority  = 100
)

// AttributeDefinitions describes the projected overrides of p in canonical order, with defaults taken
// from the profile. List values are shown as comma separated text.
func AttributeDefinitions(p *profile.Profile, exposed profile.OverrideSet) []AttributeDefinition {
	projected := Project(p, exposed)
	defs := make([]AttributeDefinition, 0, len(projected))
	for _, key := range projected.Keys() {
		def := AttributeDefinition{Key: key, Label: key.Label(), Kind: KindText}
		switch key {
		case profile.OverrideChunkSize:
			def.Kind = KindNumber
			def.Default = p.ChunkSize
			def.Minimum = &minChunkSize
			def.Maximum = &maxChunkSize
		case profile.OverridePriority:
			def.Kind = KindNumber
			def.Default = p.Priority
			def.Minimum = &minPriority
			def.Maximum = &maxPriority
		case profile.OverrideDepartment:
			def.Default = p.Department
		case profile.OverrideGroup:
			def.Default = p.Group
		case profile.OverridePrimaryPool:
			def.Default = p.PrimaryPool
		case profile.OverrideSecondaryPool:
			def.Default = p.SecondaryPool
		case profile.OverrideJobDelay:
			def.Placeholder = "dd:hh:mm:ss"
			if p.JobDelay.IsZero() {
				def.Default = ""
			} else {
				def.Default = p.JobDelay.String()
			}
		case profile.OverrideLimitGroups:
			def.Placeholder = "limit1,limit2"
			def.Default = strings.Join(p.LimitGroups, ",")
		case profile.OverrideMachineList:
			def.Placeholder = "machine1,machine2"
			def.Default = strings.Join(p.MachineList, ",")
		case profile.OverrideMachineListDeny:
			def.Kind = KindBool
			def.Default = p.MachineListDeny
		}
		defs = append(defs, def)
	}
	return defs
}
