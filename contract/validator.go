// Package contract validates payloads against the structural schemas of the
// wallet service wire contract. It has no knowledge of business semantics;
// domain invariants live in the rules package.
package contract

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"walletprobe/check"
)

// Validator holds the compiled schema catalog. Schemas are compiled once at
// construction; validation itself is side-effect free.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles the full schema catalog and returns a ready validator.
func New() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(catalog))}

	for name, def := range catalog {
		loader := gojsonschema.NewSchemaLoader()
		for refName, shared := range sharedSchemas {
			if refName == name {
				continue
			}
			if err := loader.AddSchema(refBase+refName, gojsonschema.NewGoLoader(shared)); err != nil {
				return nil, fmt.Errorf("register shared schema %s: %w", refName, err)
			}
		}

		compiled, err := loader.Compile(gojsonschema.NewGoLoader(def))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = compiled
	}

	return v, nil
}

// MustNew compiles the catalog and panics on error. The catalog is static,
// so a failure here is a programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks data against the named schema and returns a structured
// result. An unregistered schema name yields an invalid result, not an
// error; logging the outcome is the caller's responsibility.
func (v *Validator) Validate(data any, schemaName string) check.Result {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return check.Fail(schemaName, data, fmt.Sprintf("schema '%s' not found", schemaName))
	}

	var loader gojsonschema.JSONLoader
	switch d := data.(type) {
	case []byte:
		loader = gojsonschema.NewBytesLoader(d)
	case string:
		loader = gojsonschema.NewStringLoader(d)
	default:
		loader = gojsonschema.NewGoLoader(d)
	}

	result, err := schema.Validate(loader)
	if err != nil {
		return check.Fail(schemaName, data, fmt.Sprintf("payload is not valid JSON: %v", err))
	}

	if result.Valid() {
		return check.Pass(schemaName, data)
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return check.Fail(schemaName, data, errs...)
}

// Schemas returns the sorted names of all registered schemas.
func (v *Validator) Schemas() []string {
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has returns true if a schema with the given name is registered.
func (v *Validator) Has(schemaName string) bool {
	_, ok := v.schemas[schemaName]
	return ok
}
