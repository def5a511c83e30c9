package naming

import (
	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

// Named is an entry of a configuration list whose names must be unique.
type Named interface {
	GetName() string
}

// ValidateUniqueNames returns an ErrDuplicateName for the first non-empty name that appears twice in items.
// Names are compared exactly; empty names are treated as unset and may repeat.
// listType is used in the error message only.
func ValidateUniqueNames[T Named](listType string, items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		name := item.GetName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			return errors.WithStack(&farmerrors.ErrDuplicateName{Type: listType, Name: name})
		}
		seen[name] = struct{}{}
	}
	return nil
}
