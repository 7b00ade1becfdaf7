// Package vars keeps a registry of configuration values together with their
// defaults, environment names and the messages collected while validating them.
package vars

import (
	"fmt"
	"os"

	"github.com/datarhei/sheepcounter/config/value"
)

type variable struct {
	value       value.Value
	name        string
	envName     string
	description string
	required    bool
	disguise    bool // don't print the value
	merged      bool // value has been overridden from the environment
}

// Variable is the printable description of a registered value.
type Variable struct {
	Value       string
	Name        string
	EnvName     string
	Description string
	Merged      bool
}

type message struct {
	message  string
	variable Variable
	level    string
}

type Variables struct {
	vars []*variable
	logs []message
}

// Register adds a value to the registry.
func (vs *Variables) Register(val value.Value, name, envName, description string, required, disguise bool) {
	vs.vars = append(vs.vars, &variable{
		value:       val,
		name:        name,
		envName:     envName,
		description: description,
		required:    required,
		disguise:    disguise,
	})
}

// Log adds a message for the variable with the given name.
func (vs *Variables) Log(level, name string, format string, args ...interface{}) {
	v := vs.findVariable(name)
	if v == nil {
		return
	}

	variable := Variable{
		Value:       v.value.String(),
		Name:        v.name,
		EnvName:     v.envName,
		Description: v.description,
		Merged:      v.merged,
	}

	if v.disguise {
		variable.Value = "***"
	}

	vs.logs = append(vs.logs, message{
		message:  fmt.Sprintf(format, args...),
		variable: variable,
		level:    level,
	})
}

// Merge overrides the values with the contents of their environment variables, if set.
func (vs *Variables) Merge() {
	for _, v := range vs.vars {
		if len(v.envName) == 0 {
			continue
		}

		envval, ok := os.LookupEnv(v.envName)
		if !ok {
			continue
		}

		if err := v.value.Set(envval); err != nil {
			vs.Log("error", v.name, "%s", err.Error())
		}

		v.merged = true
	}
}

func (vs *Variables) Validate() {
	for _, v := range vs.vars {
		vs.Log("info", v.name, "%s", "")

		if err := v.value.Validate(); err != nil {
			vs.Log("error", v.name, "%s", err.Error())
		}

		if v.required && v.value.IsEmpty() {
			vs.Log("error", v.name, "a value is required")
		}
	}
}

func (vs *Variables) ResetLogs() {
	vs.logs = nil
}

// Messages calls logger for each collected message in the order they have been added.
func (vs *Variables) Messages(logger func(level string, v Variable, message string)) {
	for _, l := range vs.logs {
		logger(l.level, l.variable, l.message)
	}
}

func (vs *Variables) HasErrors() bool {
	for _, l := range vs.logs {
		if l.level == "error" {
			return true
		}
	}

	return false
}

// Overrides returns the names of all values that have been set from the environment.
func (vs *Variables) Overrides() []string {
	overrides := []string{}

	for _, v := range vs.vars {
		if v.merged {
			overrides = append(overrides, v.name)
		}
	}

	return overrides
}

func (vs *Variables) findVariable(name string) *variable {
	for _, v := range vs.vars {
		if v.name == name {
			return v
		}
	}

	return nil
}
