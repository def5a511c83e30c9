// Package environment builds the environment a farm job runs with.
//
// The environment starts from an allow-list of variables taken from the submitting process, then
// every value is passed through an ordered list of literal search/replace rules, typically used to
// remap paths between workstation and farm mounts. Rules run in order and each sees the output of the
// previous one, so [("A","B"), ("B","C")] turns "A" into "C".
package environment

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// DefaultMaxReplacements bounds how often a single rule may rewrite one value.
const DefaultMaxReplacements = 16

// Composer composes job environments from an allow-list and substitution rules.
type Composer struct {
	rules           []profile.EnvRule
	maxReplacements int
}

// NewComposer returns a Composer that applies rules in the given order.
func NewComposer(rules []profile.EnvRule) *Composer {
	return &Composer{
		rules:           rules,
		maxReplacements: DefaultMaxReplacements,
	}
}

// WithMaxReplacements overrides the per-rule replacement cap; values below one are ignored.
func (c *Composer) WithMaxReplacements(n int) *Composer {
	if n > 0 {
		c.maxReplacements = n
	}
	return c
}

// Compose copies allowedKeys present in baseEnv into a new map and applies the rules to every value.
// Keys missing from baseEnv are skipped.
func (c *Composer) Compose(baseEnv map[string]string, allowedKeys []string) (map[string]string, error) {
	env := make(map[string]string, len(allowedKeys))
	for _, key := range allowedKeys {
		if value, ok := baseEnv[key]; ok {
			env[key] = value
		}
	}
	return c.Substitute(env)
}

// Substitute returns a copy of env with the rules applied to every value.
func (c *Composer) Substitute(env map[string]string) (map[string]string, error) {
	rv := make(map[string]string, len(env))
	for key, value := range env {
		substituted, err := c.SubstituteValue(value)
		if err != nil {
			return nil, errors.WithMessagef(err, "environment variable %s", key)
		}
		rv[key] = substituted
	}
	return rv, nil
}

// SubstituteValue applies every rule, in order, to a single value.
func (c *Composer) SubstituteValue(value string) (string, error) {
	for _, rule := range c.rules {
		var err error
		value, err = c.apply(rule, value)
		if err != nil {
			return "", err
		}
	}
	return value, nil
}

// apply replaces rule.Name until it no longer occurs in value.
func (c *Composer) apply(rule profile.EnvRule, value string) (string, error) {
	if rule.Name == "" {
		return value, nil
	}
	for i := 0; i < c.maxReplacements; i++ {
		if !strings.Contains(value, rule.Name) {
			return value, nil
		}
		value = strings.ReplaceAll(value, rule.Name, rule.Value)
	}
	if strings.Contains(value, rule.Name) {
		return "", errors.WithStack(&farmerrors.ErrRuleExpansion{
			RuleName:   rule.Name,
			Iterations: c.maxReplacements,
		})
	}
	return value, nil
}

// Compose is a convenience wrapper around NewComposer(rules).Compose(baseEnv, allowedKeys).
func Compose(baseEnv map[string]string, allowedKeys []string, rules []profile.EnvRule) (map[string]string, error) {
	return NewComposer(rules).Compose(baseEnv, allowedKeys)
}
