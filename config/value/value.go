// Package value provides typed configuration values that can be set from
// their string representation, e.g. from an environment variable.
package value

type Value interface {
	// String returns a string representation of the value.
	String() string

	// Set parses val and stores it. It returns an error if val
	// can't be parsed.
	Set(val string) error

	// Validate returns an error if the current value is not acceptable.
	Validate() error

	// IsEmpty returns whether the value is the empty value of its type.
	IsEmpty() bool
}
