// Package fixtures loads and schema-validates the scanner's table-driven
// test scenarios from JSON files, rather than hand-writing Go struct
// literals for every case.
//
// Adapted from core/types.Validator.compileSchema: a jsonschema.Draft2020
// compiler and a schema added as an in-memory resource. The schema is
// compiled afresh on each Load call.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed testdata/*.json
var testdataFS embed.FS

const schemaURL = "mem://scenario.json"

// Token is one expected token in a scenario's expected output. Kind is
// matched by its scanner.Kind.String() spelling so fixtures stay readable
// without importing the scanner package's numeric constants.
type Token struct {
	Kind         string `json:"kind"`
	Length       int    `json:"length"`
	Line         int    `json:"line"`
	LitNextColon bool   `json:"litNextColon"`
}

// Scenario is one fully decoded, schema-validated test case.
type Scenario struct {
	Name          string  `json:"name"`
	Input         string  `json:"input"`
	Oracle        []int   `json:"oracle"`
	StackCapacity int     `json:"stackCapacity"`
	Tokens        []Token `json:"tokens"`
	FinalErr      string  `json:"finalErr"`
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, strings.NewReader(string(schemaJSON))); err != nil {
		return nil, fmt.Errorf("fixtures: add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
}

// Load validates raw (one JSON object) against the scenario schema and
// decodes it into a Scenario. Intended for use from a table-driven test
// that range-loops over embedded testdata/*.json files.
func Load(raw []byte) (Scenario, error) {
	schema, err := compileSchema()
	if err != nil {
		return Scenario{}, err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Scenario{}, fmt.Errorf("fixtures: invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Scenario{}, fmt.Errorf("fixtures: schema validation failed: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return Scenario{}, fmt.Errorf("fixtures: decode: %w", err)
	}
	return s, nil
}

// LoadAll validates and decodes every raw document in raws, in order,
// returning the first error encountered.
func LoadAll(raws [][]byte) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(raws))
	for i, raw := range raws {
		s, err := Load(raw)
		if err != nil {
			return nil, fmt.Errorf("fixtures: document %d: %w", i, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// All loads every embedded testdata/*.json scenario, sorted by file name for
// a stable test order.
func All() ([]Scenario, error) {
	entries, err := testdataFS.ReadDir("testdata")
	if err != nil {
		return nil, fmt.Errorf("fixtures: read testdata: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	raws := make([][]byte, 0, len(names))
	for _, name := range names {
		raw, err := testdataFS.ReadFile("testdata/" + name)
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", name, err)
		}
		raws = append(raws, raw)
	}
	return LoadAll(raws)
}
