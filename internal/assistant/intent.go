// Package assistant implements the Shoplite support assistant pipeline:
// intent classification, function calling, LLM-backed response generation
// and citation validation.
package assistant

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a single user message.
type Intent string

const (
	IntentPolicyQuestion Intent = "policy_question"
	IntentOrderStatus    Intent = "order_status"
	IntentProductSearch  Intent = "product_search"
	IntentComplaint      Intent = "complaint"
	IntentChitchat       Intent = "chitchat"
	IntentOffTopic       Intent = "off_topic"
	IntentViolation      Intent = "violation"
)

// intentOrder fixes the scoring iteration order; ties go to the earlier
// intent because the comparison below is strict.
var intentOrder = []Intent{
	IntentPolicyQuestion,
	IntentOrderStatus,
	IntentProductSearch,
	IntentComplaint,
	IntentChitchat,
	IntentOffTopic,
	IntentViolation,
}

type intentConfig struct {
	keywords []string
	patterns []*regexp.Regexp
	weight   float64
}

var intentPatterns = map[Intent]intentConfig{
	IntentPolicyQuestion: {
		keywords: []string{
			"return", "refund", "exchange", "policy", "ship", "shipping", "deliver",
			"warranty", "guarantee", "payment", "pay", "credit card", "account",
			"password", "reset", "sign up", "register", "privacy", "secure",
			"promo", "discount", "coupon", "contact", "support", "help",
		},
		weight: 1.0,
	},
	IntentOrderStatus: {
		keywords: []string{
			"order", "track", "tracking", "where", "shipped", "delivery",
			"package", "arrive", "status", "when will", "eta", "estimated",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ord[er]*[-\s]*\d+`), // "order 123", "ORD-123"
			regexp.MustCompile(`#\d{3,}`),               // "#12345"
			regexp.MustCompile(`(?i)order\s*number`),    // "order number"
		},
		weight: 1.5, // strong signal
	},
	IntentProductSearch: {
		keywords: []string{
			"looking for", "find", "search", "show me", "do you have", "available",
			"stock", "buy", "purchase", "product", "item", "price", "cost",
			"sell", "offer", "selection", "recommend",
		},
		weight: 1.0,
	},
	IntentComplaint: {
		keywords: []string{
			"damage", "damaged", "broken", "defect", "wrong", "incorrect",
			"disappointed", "terrible", "horrible", "worst", "awful", "bad",
			"issue", "problem", "complaint", "unhappy", "angry", "upset",
			"never", "again", "refund now", "unacceptable", "ridiculous",
		},
		weight: 1.3,
	},
	IntentChitchat: {
		keywords: []string{
			"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
			"thanks", "thank you", "appreciate", "awesome", "great", "perfect",
			"how are you", "what's up", "bye", "goodbye", "see you",
		},
		weight: 0.8,
	},
	IntentOffTopic: {
		keywords: []string{
			"weather", "forecast", "temperature", "rain", "snow",
			"news", "politics", "election", "president",
			"sport", "game", "score", "team",
			"joke", "funny", "laugh",
			"movie", "music", "song",
			"recipe", "cook", "restaurant",
		},
		weight: 1.2,
	},
	IntentViolation: {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(fuck|shit|damn|bitch|ass|hell)\b`),
			regexp.MustCompile(`(?i)\b(stupid|idiot|moron|dumb)\b`),
			regexp.MustCompile(`(?i)\b(hate|kill|die)\b`),
		},
		weight: 2.0, // must catch violations
	},
}

// Exact matches bypass scoring entirely for common greetings.
var chitchatExactMatches = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"thanks":    true,
	"thank you": true,
	"bye":       true,
	"goodbye":   true,
}

// ClassifyIntent determines user intent from a message via weighted keyword
// and pattern scoring. Empty input classifies as chitchat.
func ClassifyIntent(message string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(message))

	if normalized == "" {
		return IntentChitchat
	}

	if chitchatExactMatches[normalized] {
		return IntentChitchat
	}

	scores := make(map[Intent]float64, len(intentOrder))
	for _, intent := range intentOrder {
		config := intentPatterns[intent]

		for _, keyword := range config.keywords {
			if strings.Contains(normalized, keyword) {
				scores[intent] += config.weight
			}
		}

		// Patterns are stronger signals than keywords
		for _, pattern := range config.patterns {
			if pattern.MatchString(normalized) {
				scores[intent] += config.weight * 2
			}
		}
	}

	maxScore := 0.0
	detected := IntentChitchat
	for _, intent := range intentOrder {
		if scores[intent] > maxScore {
			maxScore = scores[intent]
			detected = intent
		}
	}

	// No strong signal on a longer message: default to policy_question,
	// which is safer than chitchat for customer support.
	if maxScore < 0.5 && len(normalized) > 10 {
		detected = IntentPolicyQuestion
	}

	return detected
}

// Classification pairs an intent with a rough confidence percentage.
type Classification struct {
	Intent     Intent `json:"intent"`
	Confidence int    `json:"confidence"`
}

// ClassifyWithConfidence classifies and estimates confidence from the share
// of matched keywords and patterns, capped at 95%.
func ClassifyWithConfidence(message string) Classification {
	intent := ClassifyIntent(message)
	normalized := strings.ToLower(strings.TrimSpace(message))
	config := intentPatterns[intent]

	matches := 0
	total := len(config.keywords)
	if total == 0 {
		total = 1
	}

	for _, keyword := range config.keywords {
		if strings.Contains(normalized, keyword) {
			matches++
		}
	}

	if len(config.patterns) > 0 {
		for _, pattern := range config.patterns {
			if pattern.MatchString(normalized) {
				matches += 2
			}
		}
		total += len(config.patterns) * 2
	}

	confidence := float64(matches) / float64(total) * 100
	if confidence > 95 {
		confidence = 95
	}

	return Classification{
		Intent:     intent,
		Confidence: int(confidence + 0.5),
	}
}

var orderIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ORD[-\s]*(\d{8}[-\s]*[A-Z0-9]{6})`), // ORD-20251019-ABC123
	regexp.MustCompile(`(?i)order[-\s]*#?(\d{3,})`),             // order #12345
	regexp.MustCompile(`#(\d{3,})`),                             // #12345
}

var whitespacePattern = regexp.MustCompile(`\s`)

// ExtractOrderID pulls an order identifier out of a message. The whole
// matched text is returned with whitespace stripped and upper-cased, or ""
// when no pattern matches.
func ExtractOrderID(message string) string {
	if message == "" {
		return ""
	}

	for _, pattern := range orderIDPatterns {
		if match := pattern.FindString(message); match != "" {
			return strings.ToUpper(whitespacePattern.ReplaceAllString(match, ""))
		}
	}

	return ""
}
