package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	SearchPerformedEvent    = "SearchPerformed"
	OrderStatusChangedEvent = "OrderStatusChanged"
	EventVersionV1          = "1.0.0"
)

// EventValidator checks outgoing event bodies against the compiled schemas.
type EventValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewEventValidator compiles every events/<name>/v<N>.json file in fsys.
// A schema that fails to compile fails the whole constructor.
func NewEventValidator(fsys fs.FS) (*EventValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, "events", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	v := &EventValidator{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key, ok := keyFromPath(path)
		if !ok {
			return nil, fmt.Errorf("schema path %s does not match events/<name>/v<N>.json", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		v.schemas[key] = schema
	}
	return v, nil
}

// keyFromPath maps "events/search-performed/v1.json" to "SearchPerformed/1.0.0".
func keyFromPath(path string) (string, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "events/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return "", false
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v")), true
}

// Validate checks body against the schema registered for eventType/version.
func (v *EventValidator) Validate(eventType, version string, body []byte) error {
	key := fmt.Sprintf("%s/%s", eventType, version)
	schema, ok := v.schemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, version)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// Known lists the registered schema keys.
func (v *EventValidator) Known() []string {
	keys := make([]string, 0, len(v.schemas))
	for key := range v.schemas {
		keys = append(keys, key)
	}
	return keys
}
