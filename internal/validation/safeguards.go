// Package validation provides safeguards for untrusted text that is embedded in model prompts.
package validation

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// InjectionCheckResult holds the result of a basic injection heuristic check.
type InjectionCheckResult struct {
	IsSafe           bool     // Whether the content passed the basic heuristic check
	DetectedKeywords []string // Any suspicious phrases found
	Reason           string   // Human-readable explanation
}

// BasicInjectionKeywords contains phrases that suggest prompt injection attempts.
// Marketing copy routinely says "you are" or "ignore the noise", so only multi-word
// instructions aimed at a model are listed.
var BasicInjectionKeywords = []string{
	"system prompt",
	"new instructions",
	"ignore previous",
	"ignore all previous",
	"ignore the above",
	"forget everything",
	"disregard above",
	"disregard previous",
	"act as a language model",
	"you are chatgpt",
}

// commonInjectionPatterns catch spacing and wording variants of the keywords.
var commonInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior)\s+instructions?`),
}

// CheckBasicHeuristics performs a keyword and pattern check for obvious injection attempts.
// It is a tripwire for logging, not a filter.
func CheckBasicHeuristics(text string) *InjectionCheckResult {
	lowerText := strings.ToLower(text)
	var detected []string

	for _, keyword := range BasicInjectionKeywords {
		if strings.Contains(lowerText, keyword) {
			detected = append(detected, keyword)
		}
	}
	for _, pattern := range commonInjectionPatterns {
		if m := pattern.FindString(text); m != "" && !containsFold(detected, m) {
			detected = append(detected, strings.ToLower(m))
		}
	}

	if len(detected) > 0 {
		return &InjectionCheckResult{
			IsSafe:           false,
			DetectedKeywords: detected,
			Reason:           "detected potential injection phrases: " + strings.Join(detected, ", "),
		}
	}

	return &InjectionCheckResult{IsSafe: true}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// LogInjectionWarning logs a warning if suspicious content is detected.
// It does NOT block processing.
func LogInjectionWarning(logger *zap.Logger, result *InjectionCheckResult, source string) {
	if logger == nil || result == nil || result.IsSafe {
		return
	}
	logger.Warn("potential prompt injection in external content",
		zap.String("source", source),
		zap.Strings("phrases", result.DetectedKeywords),
	)
}
