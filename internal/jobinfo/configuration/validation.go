package configuration

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/common/config"
	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/common/validation"
	"github.com/renderfarm/jobinfo/internal/jobinfo/naming"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// SupportedVersions is the range of settings document versions this build understands.
const SupportedVersions = ">=1.0.0, <2.0.0"

var supportedVersions = mustParseConstraint(SupportedVersions)

func mustParseConstraint(c string) *semver.Constraints {
	constraints, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraints
}

// Validate reports every problem found in s. The returned error is a multierror.Error;
// errors.As finds the individual farmerrors values.
func (s Settings) Validate() error {
	settingsValidator := validation.NewCollectingValidator[Settings](
		validation.ValidatorFunc[Settings](validateFields),
		validation.ValidatorFunc[Settings](validateVersion),
		validation.ValidatorFunc[Settings](validateUniqueNames),
		validation.ValidatorFunc[Settings](validateOverrides),
	)
	return settingsValidator.Validate(s)
}

func validateFields(s Settings) error {
	return config.FieldErrors(config.NewValidator().Struct(s))
}

func validateVersion(s Settings) error {
	if s.Version == "" {
		// Reported by validateFields.
		return nil
	}
	version, err := semver.NewVersion(s.Version)
	if err != nil {
		return errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "version",
			Value:   s.Version,
			Message: "not a semantic version",
		})
	}
	if !supportedVersions.Check(version) {
		return errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "version",
			Value:   s.Version,
			Message: fmt.Sprintf("unsupported, expected %s", SupportedVersions),
		})
	}
	return nil
}

func validateUniqueNames(s Settings) error {
	var result *multierror.Error
	for i, p := range s.Publish.CollectJobInfo.Profiles {
		listType := fmt.Sprintf("CollectJobInfo.profiles[%d].env_search_replace_values", i)
		if err := naming.ValidateUniqueNames(listType, p.EnvSearchReplaceValues); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := naming.ValidateUniqueNames("MayaSubmitDeadline.scene_patches", s.Publish.MayaSubmitDeadline.ScenePatches); err != nil {
		result = multierror.Append(result, err)
	}
	if err := naming.ValidateUniqueNames("NukeSubmitDeadline.node_class_limit_groups", s.Publish.NukeSubmitDeadline.NodeClassLimitGroups); err != nil {
		result = multierror.Append(result, err)
	}
	if err := naming.ValidateUniqueNames("ProcessSubmittedJobOnFarm.aov_filter", s.Publish.ProcessSubmittedJobOnFarm.AOVFilter); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func validateOverrides(s Settings) error {
	var result *multierror.Error
	for i, p := range s.Publish.CollectJobInfo.Profiles {
		for _, key := range p.Overrides {
			if strings.TrimSpace(key) == "" {
				continue
			}
			if _, err := profile.ParseOverrideKey(key); err != nil {
				result = multierror.Append(result, errors.WithStack(&farmerrors.ErrUnsupportedOverrideKey{
					Key:     key,
					Profile: i,
				}))
			}
		}
	}
	return result.ErrorOrNil()
}
