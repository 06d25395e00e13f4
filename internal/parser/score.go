// Package parser pulls structured data out of free-form model responses.
package parser

import (
	"regexp"
	"strconv"
)

const maxScore = 100

var scorePattern = regexp.MustCompile(`(\d{1,3})%`)

// ScoreResult is an extracted experience-match percentage.
type ScoreResult struct {
	Value int
	// Parsed is false when the text held no percentage and Value defaulted to 0.
	Parsed bool
}

// Score returns the first "NN%" token of text. Values above 100 are clamped.
func Score(text string) ScoreResult {
	match := scorePattern.FindStringSubmatch(text)
	if match == nil {
		return ScoreResult{}
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return ScoreResult{}
	}

	if value > maxScore {
		value = maxScore
	}

	return ScoreResult{Value: value, Parsed: true}
}
