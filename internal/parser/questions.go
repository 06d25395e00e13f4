package parser

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/ats-screener/internal/types"
)

// Status tags the outcome of decoding a structured payload.
type Status int

const (
	StatusOK Status = iota
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// QuestionsResult is either OK with the decoded records or Malformed with an
// empty record list and the reason the payload was rejected.
type QuestionsResult struct {
	Status  Status
	Records []types.MCQRecord
	Reason  string
}

// OK reports whether the payload was decoded.
func (r QuestionsResult) OK() bool {
	return r.Status == StatusOK
}

//go:embed questions.schema.json
var questionsSchemaJSON string

var questionsSchema = mustSchema(questionsSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile questions schema: %v", err))
	}
	return schema
}

// Questions finds the first JSON object in text that satisfies the questions
// schema and decodes its questions array. Objects are tried in document
// order; a rejected object is searched for nested candidates before the next
// sibling, so a payload wrapped in an envelope is still found. It never
// fails: unusable output yields a Malformed result.
func Questions(text string) QuestionsResult {
	spans := Objects(text)
	if len(spans) == 0 {
		return malformed("no JSON object found")
	}

	var reasons []string
	for len(spans) > 0 {
		span := spans[0]
		spans = spans[1:]

		records, err := decodeQuestions(span)
		if err != nil {
			reasons = append(reasons, err.Error())
			spans = append(Objects(span[1:len(span)-1]), spans...)
			continue
		}
		return QuestionsResult{Status: StatusOK, Records: records}
	}

	return malformed(strings.Join(reasons, "; "))
}

func malformed(reason string) QuestionsResult {
	return QuestionsResult{Status: StatusMalformed, Records: []types.MCQRecord{}, Reason: reason}
}

func decodeQuestions(span string) ([]types.MCQRecord, error) {
	var document map[string]any
	if err := json.Unmarshal([]byte(span), &document); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	result, err := questionsSchema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validate questions: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, errors.New("schema mismatch: " + strings.Join(details, ", "))
	}

	records := make([]types.MCQRecord, 0)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &records,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(document["questions"]); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	return records, nil
}
