// Package json wraps encoding/json with helpers for reporting where a document is malformed.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Number = json.Number

// Marshal is a wrapper for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal is a wrapper for json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Parse decodes data into a generic document. Numbers are kept as Number such
// that integers and fractions can be told apart. The top level value must be
// an object.
func Parse(data []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	document := map[string]interface{}{}

	if err := decoder.Decode(&document); err != nil {
		return nil, FormatError(data, err)
	}

	return document, nil
}

// Int returns the value of key in document as integer. The second return
// value is false if the key is missing or the value is not an integer.
func Int(document map[string]interface{}, key string) (int64, bool) {
	if document == nil {
		return 0, false
	}

	switch v := document[key].(type) {
	case Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return n, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}

		return int64(v), true
	}

	return 0, false
}

// FormatError takes the input and the error from decoding it and returns an
// error that tells at which line and character the error happened.
func FormatError(input []byte, err error) error {
	var offset int64

	switch jsonError := err.(type) {
	case *json.SyntaxError:
		offset = jsonError.Offset
	case *json.UnmarshalTypeError:
		offset = jsonError.Offset
	default:
		return err
	}

	line, character, offsetError := lineAndCharacter(input, int(offset))
	if offsetError != nil {
		return err
	}

	if jsonError, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Errorf("expect type '%s' for '%s' at line %d, character %d: %w", jsonError.Type.String(), jsonError.Field, line, character, err)
	}

	return fmt.Errorf("syntax error at line %d, character %d: %w", line, character, err)
}

func lineAndCharacter(input []byte, offset int) (line int, character int, err error) {
	if offset > len(input) || offset < 0 {
		return 0, 0, fmt.Errorf("couldn't find offset %d within the input", offset)
	}

	line = 1

	for i, b := range input {
		if b == '\n' {
			line++
			character = 0
		}
		character++
		if i == offset {
			break
		}
	}

	return line, character, nil
}
