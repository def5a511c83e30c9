package overrides

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Values holds the raw values an artist entered, keyed by override.
// Values may be typed (int, bool, []string) or text as produced by the publisher widgets.
type Values map[profile.OverrideKey]interface{}

// ParseValues parses key=value assignments, e.g. from the command line.
func ParseValues(assignments []string) (Values, error) {
	values := make(Values, len(assignments))
	for _, assignment := range assignments {
		rawKey, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, errors.WithStack(&farmerrors.ErrInvalidArgument{
				Name:    "override",
				Value:   assignment,
				Message: "expected key=value",
			})
		}
		key, err := profile.ParseOverrideKey(rawKey)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// Result records what Apply did with each submitted value.
type Result struct {
	Applied []profile.OverrideKey
	// Ignored holds keys that were submitted but are not editable for this publish.
	Ignored []profile.OverrideKey
}

// Apply writes the values for keys in allowed onto params. Values for other keys are ignored, as are
// empty text values, which the publisher sends for untouched fields.
func Apply(params *profile.JobParameters, values Values, allowed profile.OverrideSet) (Result, error) {
	var result Result
	for _, key := range profile.CanonicalOverrideKeys {
		raw, ok := values[key]
		if !ok || isUnset(raw) {
			continue
		}
		if !allowed.Contains(key) {
			result.Ignored = append(result.Ignored, key)
			continue
		}
		if err := applyValue(params, key, raw); err != nil {
			return Result{}, err
		}
		result.Applied = append(result.Applied, key)
	}
	return result, nil
}

func isUnset(raw interface{}) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}

func applyValue(params *profile.JobParameters, key profile.OverrideKey, raw interface{}) error {
	switch key {
	case profile.OverrideChunkSize:
		n, err := toInt(key, raw)
		if err != nil {
			return err
		}
		if n < minChunkSize || n > maxChunkSize {
			return invalid(key, raw, fmt.Sprintf("must be between %d and %d", minChunkSize, maxChunkSize))
		}
		params.ChunkSize = n
	case profile.OverridePriority:
		n, err := toInt(key, raw)
		if err != nil {
			return err
		}
		if n < minPriority || n > maxPriority {
			return invalid(key, raw, fmt.Sprintf("must be between %d and %d", minPriority, maxPriority))
		}
		params.Priority = n
	case profile.OverrideDepartment:
		params.Department = cast.ToString(raw)
	case profile.OverrideGroup:
		params.Group = cast.ToString(raw)
	case profile.OverridePrimaryPool:
		params.PrimaryPool = cast.ToString(raw)
	case profile.OverrideSecondaryPool:
		params.SecondaryPool = cast.ToString(raw)
	case profile.OverrideJobDelay:
		delay, err := profile.ParseJobDelay(cast.ToString(raw))
		if err != nil {
			return err
		}
		params.JobDelay = delay
	case profile.OverrideLimitGroups:
		list, err := toList(key, raw)
		if err != nil {
			return err
		}
		params.LimitGroups = list
	case profile.OverrideMachineList:
		list, err := toList(key, raw)
		if err != nil {
			return err
		}
		params.MachineList = list
	case profile.OverrideMachineListDeny:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return invalid(key, raw, "expected a boolean")
		}
		params.MachineListDeny = b
	}
	return nil
}

func toInt(key profile.OverrideKey, raw interface{}) (int, error) {
	if s, ok := raw.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, invalid(key, raw, "expected an integer")
		}
		return n, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, invalid(key, raw, "expected an integer")
	}
	return n, nil
}

// toList accepts either a list or comma separated text.
func toList(key profile.OverrideKey, raw interface{}) ([]string, error) {
	if s, ok := raw.(string); ok {
		return SplitList(s), nil
	}
	list, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, invalid(key, raw, "expected a list")
	}
	rv := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			rv = append(rv, item)
		}
	}
	return rv, nil
}

// SplitList splits comma separated text, dropping blank entries.
func SplitList(s string) []string {
	rv := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			rv = append(rv, item)
		}
	}
	return rv
}

func invalid(key profile.OverrideKey, value interface{}, message string) error {
	return errors.WithStack(&farmerrors.ErrInvalidArgument{
		Name:    string(key),
		Value:   value,
		Message: message,
	})
}
