package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/timely/internal/model"
)

const statusEnum = `["backlog", "todo", "working", "done"]`

var taskCreateSchema = compileSchema("task_create.json", `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title":       {"type": "string", "minLength": 1, "maxLength": 200},
		"description": {"type": ["string", "null"]},
		"status":      {"enum": `+statusEnum+`},
		"order":       {"type": "number"},
		"tags":        {"type": ["array", "null"], "items": {"type": "string"}}
	}
}`)

var taskUpdateSchema = compileSchema("task_update.json", `{
	"type": "object",
	"properties": {
		"title":       {"type": ["string", "null"], "minLength": 1, "maxLength": 200},
		"description": {"type": ["string", "null"]},
		"status":      {"enum": `+strings.Replace(statusEnum, "]", ", null]", 1)+`},
		"order":       {"type": ["number", "null"]},
		"tags":        {"type": ["array", "null"], "items": {"type": "string"}}
	}
}`)

var eventCreateSchema = compileSchema("event_create.json", `{
	"type": "object",
	"required": ["title", "start", "end"],
	"properties": {
		"title":   {"type": "string", "maxLength": 200},
		"start":   {"type": "string", "minLength": 1},
		"end":     {"type": "string", "minLength": 1},
		"allDay":  {"type": ["boolean", "null"]},
		"all_day": {"type": ["boolean", "null"]},
		"task_id": {"type": ["integer", "null"]}
	}
}`)

var eventUpdateSchema = compileSchema("event_update.json", `{
	"type": "object",
	"properties": {
		"title":   {"type": ["string", "null"], "maxLength": 200},
		"start":   {"type": ["string", "null"], "minLength": 1},
		"end":     {"type": ["string", "null"], "minLength": 1},
		"allDay":  {"type": ["boolean", "null"]},
		"all_day": {"type": ["boolean", "null"]},
		"task_id": {"type": ["integer", "null"]}
	}
}`)

// compileSchema compiles an embedded schema, panicking on a malformed
// literal since that is a programming error.
func compileSchema(url, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("adding schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// validateBody checks a raw JSON body against schema and returns a
// *model.ValidationError naming the first offending field.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &model.ValidationError{Message: fmt.Sprintf("malformed JSON body: %v", err)}
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return &model.ValidationError{Message: err.Error()}
		}
		return firstSchemaCause(ve)
	}
	return nil
}

// firstSchemaCause walks to the first leaf cause, which names the field.
func firstSchemaCause(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		field = missingProperty(ve.Message)
	}
	return &model.ValidationError{Field: field, Message: ve.Message}
}

// missingProperty pulls the first quoted name out of a "missing
// properties: 'title', 'start'" message.
func missingProperty(msg string) string {
	if !strings.HasPrefix(msg, "missing properties") {
		return ""
	}
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
