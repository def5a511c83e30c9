package profile

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

// OverrideKey names a job parameter that an artist may edit at publish time.
type OverrideKey string

const (
	OverrideDepartment      OverrideKey = "department"
	OverrideJobDelay        OverrideKey = "job_delay"
	OverrideChunkSize       OverrideKey = "chunk_size"
	OverrideGroup           OverrideKey = "group"
	OverridePriority        OverrideKey = "priority"
	OverrideLimitGroups     OverrideKey = "limit_groups"
	OverridePrimaryPool     OverrideKey = "primary_pool"
	OverrideSecondaryPool   OverrideKey = "secondary_pool"
	OverrideMachineList     OverrideKey = "machine_list"
	OverrideMachineListDeny OverrideKey = "machine_list_deny"
)

// CanonicalOverrideKeys lists every supported override in presentation order.
var CanonicalOverrideKeys = []OverrideKey{
	OverrideDepartment,
	OverrideJobDelay,
	OverrideChunkSize,
	OverrideGroup,
	OverridePriority,
	OverrideLimitGroups,
	OverridePrimaryPool,
	OverrideSecondaryPool,
	OverrideMachineList,
	OverrideMachineListDeny,
}

var overrideLabels = map[OverrideKey]string{
	OverrideDepartment:      "Department",
	OverrideJobDelay:        "Delay job (timecode dd:hh:mm:ss)",
	OverrideChunkSize:       "Frames per Task",
	OverrideGroup:           "Group",
	OverridePriority:        "Priority",
	OverrideLimitGroups:     "Limit groups",
	OverridePrimaryPool:     "Primary pool",
	OverrideSecondaryPool:   "Secondary pool",
	OverrideMachineList:     "Machine List",
	OverrideMachineListDeny: "Machine List is a Deny",
}

// Label returns the human-readable label shown next to the override in the publisher.
func (k OverrideKey) Label() string {
	return overrideLabels[k]
}

func (k OverrideKey) Valid() bool {
	_, ok := overrideLabels[k]
	return ok
}

// ParseOverrideKey converts s into an OverrideKey.
// Surrounding whitespace is ignored; matching is otherwise exact.
func ParseOverrideKey(s string) (OverrideKey, error) {
	k := OverrideKey(strings.TrimSpace(s))
	if !k.Valid() {
		return "", errors.WithStack(&farmerrors.ErrUnsupportedOverrideKey{Key: s, Profile: -1})
	}
	return k, nil
}

// OverrideSet is a set of override keys.
type OverrideSet map[OverrideKey]struct{}

// NewOverrideSet returns a set containing keys.
func NewOverrideSet(keys ...OverrideKey) OverrideSet {
	s := make(OverrideSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// AllOverrides returns a set containing every canonical override key.
func AllOverrides() OverrideSet {
	return NewOverrideSet(CanonicalOverrideKeys...)
}

// ParseOverrideSet parses every entry of keys, returning the first unsupported key as an error.
func ParseOverrideSet(keys []string) (OverrideSet, error) {
	s := make(OverrideSet, len(keys))
	for _, raw := range keys {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		k, err := ParseOverrideKey(raw)
		if err != nil {
			return nil, err
		}
		s[k] = struct{}{}
	}
	return s, nil
}

func (s OverrideSet) Contains(k OverrideKey) bool {
	_, ok := s[k]
	return ok
}

// Intersect returns the keys present in both s and other.
func (s OverrideSet) Intersect(other OverrideSet) OverrideSet {
	rv := make(OverrideSet)
	for k := range s {
		if other.Contains(k) {
			rv[k] = struct{}{}
		}
	}
	return rv
}

// Keys returns the members of s in canonical order.
func (s OverrideSet) Keys() []OverrideKey {
	rv := make([]OverrideKey, 0, len(s))
	for _, k := range CanonicalOverrideKeys {
		if s.Contains(k) {
			rv = append(rv, k)
		}
	}
	return rv
}

// Strings returns the members of s in canonical order as plain strings.
func (s OverrideSet) Strings() []string {
	keys := s.Keys()
	rv := make([]string, len(keys))
	for i, k := range keys {
		rv[i] = string(k)
	}
	return rv
}

func (s OverrideSet) Equal(other OverrideSet) bool {
	return slices.Equal(s.Keys(), other.Keys())
}
