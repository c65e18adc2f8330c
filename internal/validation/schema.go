package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"timecard-report/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemaOnce    sync.Once
	entriesSchema *gojsonschema.Schema
	eventSchema   *gojsonschema.Schema
	schemaErr     error
)

func loadSchemas() error {
	schemaOnce.Do(func() {
		entriesSchema, schemaErr = LoadSchema("schemas/entries_response.schema.json")
		if schemaErr != nil {
			return
		}
		eventSchema, schemaErr = LoadSchema("schemas/punch_event.schema.json")
	})
	return schemaErr
}

// LoadSchema compiles one of the embedded JSON schemas
func LoadSchema(name string) (*gojsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return schema, nil
}

// Validate checks a JSON document against a schema
func Validate(document []byte, schema *gojsonschema.Schema) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// ValidateEntriesPayload validates a GET /timecard/entries/ response body
func ValidateEntriesPayload(body []byte) error {
	if err := loadSchemas(); err != nil {
		return err
	}
	return Validate(body, entriesSchema)
}

// ValidateAndParseEntries validates and unmarshals an entries envelope
func ValidateAndParseEntries(body []byte) (*models.EntriesResponse, error) {
	if err := ValidateEntriesPayload(body); err != nil {
		return nil, err
	}

	var response models.EntriesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &response, nil
}

// ParseEventsDocument reads punch events from either a bare JSON array or
// the upstream {success, entries} envelope. An envelope with
// success=false is reported as an error carrying its message.
func ParseEventsDocument(body []byte) ([]models.PunchEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] != '[' {
		response, err := ValidateAndParseEntries(trimmed)
		if err != nil {
			return nil, err
		}
		if !response.Success {
			return nil, fmt.Errorf("entries document reports failure: %s", response.Error)
		}
		return response.Entries, nil
	}

	if err := loadSchemas(); err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	events := make([]models.PunchEvent, 0, len(raw))
	for i, item := range raw {
		if err := Validate(item, eventSchema); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		var event models.PunchEvent
		if err := json.Unmarshal(item, &event); err != nil {
			return nil, fmt.Errorf("event %d: failed to parse JSON: %w", i, err)
		}
		events = append(events, event)
	}
	return events, nil
}
