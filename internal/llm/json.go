package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrNoJSONObject is returned when the response contains no JSON object
	ErrNoJSONObject = errors.New("no json object found in response")
	// ErrUnbalancedJSON is returned when braces in the response do not match
	ErrUnbalancedJSON = errors.New("unbalanced braces in json response")
)

// ExtractJSON trims an LLM response down to the outermost JSON object.
// Models wrap JSON in prose or code fences despite instructions, so the
// text between the first '{' and the last '}' is taken and brace counts
// are checked before returning.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	candidate := response[start : end+1]

	if strings.Count(candidate, "{") != strings.Count(candidate, "}") {
		return "", ErrUnbalancedJSON
	}
	return candidate, nil
}

// DecodeJSON extracts the outermost JSON object and unmarshals it into v.
func DecodeJSON(response string, v any) error {
	candidate, err := ExtractJSON(response)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(candidate), v)
}
