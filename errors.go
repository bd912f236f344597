package rbm

import (
	"bytes"
	"fmt"
)

// DimError is returned when an input does not have the shape an operation expects.
type DimError struct {
	Op   string // operation that rejected the input
	What string // "dims" or "columns"
	Want int
	Got  int
}

func (err *DimError) Error() string {
	return fmt.Sprintf("%s: expected %d %s, got %d", err.Op, err.Want, err.What, err.Got)
}

// ConfigError is returned when a configuration value or call argument is out of range.
type ConfigError struct {
	Field string
	Value interface{}
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", err.Field, err.Value)
}

type manyErr []error

func (err manyErr) Error() string {
	var buf bytes.Buffer
	for _, e := range err {
		fmt.Fprintln(&buf, e.Error())
	}
	return buf.String()
}
