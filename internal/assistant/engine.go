package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"shoplite/internal/config"
	"shoplite/internal/knowledge"
	"shoplite/internal/logging"
	"shoplite/internal/models"
)

// Per-intent token budgets for the generation call.
const (
	policyTokenBudget    = 200
	orderTokenBudget     = 120
	productTokenBudget   = 150
	complaintTokenBudget = 120
	chitchatTokenBudget  = 80
	offTopicTokenBudget  = 80
)

// stopMarkers truncate generated text before the model continues the
// conversation on its own turn.
var stopMarkers = []string{
	"\n\nUser",
	"\nUser:",
	"\n\nAssistant",
	"\nAssistant:",
	"\n\nQ:",
	"\nQ:",
}

// MetricsTracker records completed chat turns. Valid and total citation
// counts are tracked separately so citation accuracy reflects reality.
type MetricsTracker interface {
	TrackChat(intent string, responseTime time.Duration, validCitations, totalCitations int)
}

// ResponseCache caches generated text keyed by prompt hash. May be backed by
// Redis; a nil cache disables caching.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Engine orchestrates a single chat turn: classify, dispatch to an
// intent-specific handler, validate citations, track metrics.
type Engine struct {
	kb       *knowledge.Store
	registry *Registry
	llm      Generator
	metrics  MetricsTracker
	prompts  *config.Prompts
	cache    ResponseCache
}

// NewEngine wires the assistant pipeline. cache may be nil.
func NewEngine(kb *knowledge.Store, registry *Registry, llm Generator, metrics MetricsTracker, prompts *config.Prompts, cache ResponseCache) *Engine {
	return &Engine{
		kb:       kb,
		registry: registry,
		llm:      llm,
		metrics:  metrics,
		prompts:  prompts,
		cache:    cache,
	}
}

type handlerResult struct {
	text            string
	citations       []string
	totalCitations  int
	functionsCalled []string
}

// HandleQuery processes one user message and returns the assistant's reply.
// Failures in the generation endpoint or the function registry degrade to
// templated responses; this method never returns an error to the caller.
func (e *Engine) HandleQuery(ctx context.Context, message string, _ map[string]interface{}) models.ChatReply {
	start := time.Now()

	intent := ClassifyIntent(message)

	var result handlerResult
	switch intent {
	case IntentPolicyQuestion:
		result = e.handlePolicyQuestion(ctx, message)
	case IntentOrderStatus:
		result = e.handleOrderStatus(ctx, message)
	case IntentProductSearch:
		result = e.handleProductSearch(ctx, message)
	case IntentComplaint:
		result = e.handleComplaint(ctx, message)
	case IntentChitchat:
		result = e.handleChitchat(ctx, message)
	case IntentOffTopic:
		result = e.handleOffTopic(ctx, message)
	case IntentViolation:
		result = e.handleViolation()
	default:
		result = handlerResult{text: "I'm here to help with your Shoplite questions!"}
	}

	elapsed := time.Since(start)
	e.metrics.TrackChat(string(intent), elapsed, len(result.citations), result.totalCitations)
	logging.WithChat(string(intent), elapsed.Milliseconds()).Debug("assistant turn complete")

	if result.citations == nil {
		result.citations = []string{}
	}
	if result.functionsCalled == nil {
		result.functionsCalled = []string{}
	}

	return models.ChatReply{
		Text:            result.text,
		Intent:          string(intent),
		Citations:       result.citations,
		FunctionsCalled: result.functionsCalled,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		ResponseTimeMs:  elapsed.Milliseconds(),
	}
}

// generate runs the LLM call through the optional response cache.
func (e *Engine) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var key string
	if e.cache != nil {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", maxTokens, prompt)))
		key = hex.EncodeToString(sum[:])
		if cached, ok := e.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	text, err := e.llm.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		e.cache.Set(ctx, key, text)
	}
	return text, nil
}

// truncateAtStopMarkers cuts generated text at the first stop marker.
func truncateAtStopMarkers(text string) string {
	for _, marker := range stopMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			text = strings.TrimSpace(text[:idx])
		}
	}
	return text
}

func (e *Engine) handlePolicyQuestion(ctx context.Context, message string) handlerResult {
	policies := e.kb.FindRelevant(message, 3)

	if len(policies) == 0 {
		return handlerResult{
			text:      "I don't have specific information on that. Let me connect you with our team for details.",
			citations: []string{},
		}
	}

	contextLines := make([]string, len(policies))
	for i, p := range policies {
		contextLines[i] = fmt.Sprintf("[%s] %s", p.ID, p.Answer)
	}

	prompt := fmt.Sprintf(`You are %s, %s.

User asked: %q

Relevant policies:
%s

Instructions:
- Respond in 2-3 sentences maximum
- Answer the user's question directly
- Cite policies using [PolicyID] format
- Stop after answering the question
- Do not continue the conversation

Your Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message, strings.Join(contextLines, "\n\n"))

	generated, err := e.generate(ctx, prompt, policyTokenBudget)
	if err != nil {
		top := policies[0]
		return handlerResult{
			text:           fmt.Sprintf("Based on our policies: %s [%s]", top.Answer, top.ID),
			citations:      []string{top.ID},
			totalCitations: 1,
		}
	}

	cleaned := truncateAtStopMarkers(generated)

	validation := ValidateCitations(cleaned, e.kb)
	if !validation.IsValid {
		log.Printf("⚠️ [ASSISTANT] Invalid citations: %v", validation.InvalidCitations)
	}

	// Invalid citations stay in the text; only the valid subset is reported.
	return handlerResult{
		text:           cleaned,
		citations:      validation.ValidCitations,
		totalCitations: validation.TotalCitations,
	}
}

func (e *Engine) handleOrderStatus(ctx context.Context, message string) handlerResult {
	orderID := ExtractOrderID(message)

	if orderID == "" {
		return handlerResult{
			text: "I'd be happy to check your order! Could you provide your order number? It looks like ORD-20251019-ABC123.",
		}
	}

	result := e.registry.Execute(ctx, "getOrderStatus", map[string]interface{}{"orderId": orderID})
	if !result.Success {
		return handlerResult{
			text:            fmt.Sprintf("I couldn't find order %s. Please double-check the order number or contact support.", orderID),
			functionsCalled: []string{"getOrderStatus"},
		}
	}

	order, ok := result.Data.(OrderStatusData)
	if !ok {
		return handlerResult{
			text:            fmt.Sprintf("I couldn't find order %s. Please double-check the order number or contact support.", orderID),
			functionsCalled: []string{"getOrderStatus"},
		}
	}

	prompt := fmt.Sprintf(`You are %s, %s.

User asked about their order: %q

Order details:
- Order ID: %s
- Status: %s
- Carrier: %s
- Tracking: %s
- Estimated Delivery: %s
- Total: $%.2f

Provide a friendly update about the order. Be reassuring and helpful. Keep it to 2-3 sentences.

Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message,
		order.OrderID, order.Status, order.Carrier, order.TrackingNumber,
		order.EstimatedDelivery.Format("Jan 2, 2006"), order.Total)

	generated, err := e.generate(ctx, prompt, orderTokenBudget)
	if err != nil {
		var statusMsg string
		switch order.Status {
		case models.OrderStatusDelivered:
			statusMsg = "has been delivered!"
		case models.OrderStatusShipped:
			statusMsg = fmt.Sprintf("is on its way with %s. Expected delivery: %s.",
				order.Carrier, order.EstimatedDelivery.Format("Jan 2, 2006"))
		default:
			statusMsg = "is being processed and will ship soon."
		}

		return handlerResult{
			text:            fmt.Sprintf("Your order %s %s", order.OrderID, statusMsg),
			functionsCalled: []string{"getOrderStatus"},
		}
	}

	return handlerResult{
		text:            generated,
		functionsCalled: []string{"getOrderStatus"},
	}
}

func (e *Engine) handleProductSearch(ctx context.Context, message string) handlerResult {
	result := e.registry.Execute(ctx, "searchProducts", map[string]interface{}{"query": message, "limit": 5})

	data, ok := result.Data.(ProductSearchData)
	if !result.Success || !ok || !data.Found {
		return handlerResult{
			text:            "I couldn't find products matching that. Could you describe what you're looking for in more detail?",
			functionsCalled: []string{"searchProducts"},
		}
	}

	listLines := make([]string, len(data.Products))
	for i, p := range data.Products {
		availability := "Out of stock"
		if p.Stock > 0 {
			availability = "In stock"
		}
		listLines[i] = fmt.Sprintf("- %s: $%.2f (%s)", p.Name, p.Price, availability)
	}

	prompt := fmt.Sprintf(`You are %s, %s.

User is looking for: %q

I found these products:
%s

Present these products in a friendly way. Highlight 1-2 that seem most relevant. Keep it to 2-3 sentences.

Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message, strings.Join(listLines, "\n"))

	generated, err := e.generate(ctx, prompt, productTokenBudget)
	if err != nil {
		parts := make([]string, len(data.Products))
		for i, p := range data.Products {
			parts[i] = fmt.Sprintf("%s ($%.2f)", p.Name, p.Price)
		}
		return handlerResult{
			text: fmt.Sprintf("I found %d products: %s. Would you like details on any of these?",
				len(data.Products), strings.Join(parts, ", ")),
			functionsCalled: []string{"searchProducts"},
		}
	}

	return handlerResult{
		text:            generated,
		functionsCalled: []string{"searchProducts"},
	}
}

func (e *Engine) handleComplaint(ctx context.Context, message string) handlerResult {
	prompt := fmt.Sprintf(`You are %s, %s.

Customer complaint: %q

Respond with empathy and care. Show you understand their frustration. Apologize sincerely and offer to help resolve it. Keep it to 2-3 sentences.

Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message)

	generated, err := e.generate(ctx, prompt, complaintTokenBudget)
	if err != nil {
		return handlerResult{
			text: "I'm so sorry to hear you're having this issue. I completely understand your frustration. Let me help resolve this right away - could you tell me more details so I can assist you?",
		}
	}
	return handlerResult{text: generated}
}

func (e *Engine) handleChitchat(ctx context.Context, message string) handlerResult {
	prompt := fmt.Sprintf(`You are %s, %s.

User said: %q

This is casual conversation. Respond warmly and briefly (1-2 sentences), then redirect to how you can help with Shoplite. Stay friendly but professional.

Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message)

	generated, err := e.generate(ctx, prompt, chitchatTokenBudget)
	if err != nil {
		lower := strings.ToLower(message)
		switch {
		case strings.Contains(lower, "hi") || strings.Contains(lower, "hello"):
			return handlerResult{text: fmt.Sprintf("Hi! I'm %s from Shoplite support. How can I help you today?", e.prompts.Assistant.Name)}
		case strings.Contains(lower, "thank"):
			return handlerResult{text: "You're very welcome! Is there anything else I can help you with?"}
		default:
			return handlerResult{text: "How can I assist you with your Shoplite order or questions today?"}
		}
	}
	return handlerResult{text: generated}
}

func (e *Engine) handleOffTopic(ctx context.Context, message string) handlerResult {
	prompt := fmt.Sprintf(`You are %s, %s.

User asked an off-topic question: %q

Politely explain you're focused on Shoplite support. Redirect them to what you CAN help with. Be friendly but clear. Keep it to 1-2 sentences.

Response:`, e.prompts.Assistant.Name, e.prompts.Assistant.Role, message)

	generated, err := e.generate(ctx, prompt, offTopicTokenBudget)
	if err != nil {
		return handlerResult{
			text: "I'm focused on helping with Shoplite-related questions like orders, products, shipping, and policies. Is there anything related to your Shoplite experience I can help you with?",
		}
	}
	return handlerResult{text: generated}
}

// handleViolation is resolved entirely locally, never through the LLM.
func (e *Engine) handleViolation() handlerResult {
	return handlerResult{
		text: "I'm here to help with your Shoplite questions in a respectful manner. If you have a legitimate concern, I'm happy to assist.",
	}
}
