// Package schema validates API request bodies against embedded JSON
// Schemas before they are decoded into domain types.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed validate_request.json
var validateRequestSchema []byte

var validateRequest = mustCompile("validate_request.json", validateRequestSchema)

func mustCompile(name string, raw []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return schema
}

// CheckValidateRequest validates the raw body of a batch validation
// request. It returns a descriptive error when the body is not valid JSON
// or does not match the request schema.
func CheckValidateRequest(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	if err := validateRequest.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("request body does not match schema: %s", flatten(ve))
		}
		return fmt.Errorf("request body does not match schema: %w", err)
	}
	return nil
}

// flatten picks the deepest leaf cause so the caller sees the most
// specific violation instead of the root "doesn't validate" wrapper.
func flatten(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
