package validation

import (
	"github.com/hashicorp/go-multierror"
)

type Validator[T any] interface {
	Validate(obj T) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc[T any] func(obj T) error

func (f ValidatorFunc[T]) Validate(obj T) error {
	return f(obj)
}

// CompoundValidator runs every validator and returns the first failure.
type CompoundValidator[T any] struct {
	validators []Validator[T]
}

func NewCompoundValidator[T any](validators ...Validator[T]) CompoundValidator[T] {
	return CompoundValidator[T]{
		validators: validators,
	}
}

func (c CompoundValidator[T]) Validate(obj T) error {
	for _, v := range c.validators {
		err := v.Validate(obj)
		if err != nil {
			return err
		}
	}
	return nil
}

// CollectingValidator runs every validator and aggregates all failures,
// so that a configuration author sees every problem at once.
type CollectingValidator[T any] struct {
	validators []Validator[T]
}

func NewCollectingValidator[T any](validators ...Validator[T]) CollectingValidator[T] {
	return CollectingValidator[T]{
		validators: validators,
	}
}

func (c CollectingValidator[T]) Validate(obj T) error {
	var result *multierror.Error
	for _, v := range c.validators {
		if err := v.Validate(obj); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
