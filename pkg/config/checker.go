package config

import (
	"fmt"
)

// Checker collects validation errors for rules that struct tags cannot
// express. It keeps going after the first failure.
type Checker struct {
	errors []error
	name   string
}

// NewChecker creates a checker whose messages are prefixed with name
func NewChecker(name string) *Checker {
	return &Checker{name: name}
}

// Required validates that a string field is not empty.
func (c *Checker) Required(field, value string) *Checker {
	if value == "" {
		c.errors = append(c.errors, fmt.Errorf("%s: field is required", field))
	}
	return c
}

// Custom applies a custom validation function.
func (c *Checker) Custom(field string, fn func() error) *Checker {
	if err := fn(); err != nil {
		c.errors = append(c.errors, fmt.Errorf("%s: %w", field, err))
	}
	return c
}

// When conditionally applies validations if the condition is true.
func (c *Checker) When(condition bool, validations func(*Checker)) *Checker {
	if condition {
		validations(c)
	}
	return c
}

// Errors returns all validation errors.
func (c *Checker) Errors() []error {
	return c.errors
}

// Validate returns the first error, annotated with the total count when
// more than one rule failed.
func (c *Checker) Validate() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	}
	return fmt.Errorf("%s validation failed with %d errors: %w", c.name, len(c.errors), c.errors[0])
}
