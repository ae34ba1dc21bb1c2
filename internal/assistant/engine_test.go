package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"shoplite/internal/config"
	"shoplite/internal/knowledge"
	"shoplite/internal/models"
)

type stubGenerator struct {
	mu         sync.Mutex
	text       string
	err        error
	calls      int
	lastPrompt string
	lastTokens int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastPrompt = prompt
	g.lastTokens = maxTokens
	return g.text, g.err
}

type recordedTurn struct {
	intent         string
	validCitations int
	totalCitations int
}

type stubMetrics struct {
	mu    sync.Mutex
	turns []recordedTurn
}

func (m *stubMetrics) TrackChat(intent string, responseTime time.Duration, validCitations, totalCitations int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, recordedTurn{intent, validCitations, totalCitations})
}

func (m *stubMetrics) last(t *testing.T) recordedTurn {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.turns) == 0 {
		t.Fatal("no turns tracked")
	}
	return m.turns[len(m.turns)-1]
}

type stubOrderStore struct {
	order *models.Order
	err   error
}

func (s *stubOrderStore) FindByReference(ctx context.Context, ref string) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if s.order == nil {
		return nil, nil
	}
	return []models.Order{*s.order}, nil
}

type stubProductStore struct {
	products []models.Product
	err      error
}

func (s *stubProductStore) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	return s.products, s.err
}

func testKB() *knowledge.Store {
	return knowledge.NewStore([]knowledge.Entry{
		{ID: "Return3.1", Question: "What is your return policy?", Answer: "You have 30 days to return items.", Category: "Returns"},
		{ID: "Shipping2.4", Question: "How long does shipping take?", Answer: "Standard shipping takes 5-7 business days.", Category: "Shipping"},
	})
}

func testPrompts() *config.Prompts {
	return &config.Prompts{
		Assistant: config.AssistantPrompts{
			Name: "Alex",
			Role: "a friendly Shoplite customer support assistant",
		},
	}
}

func newTestEngine(t *testing.T, gen Generator, orders *stubOrderStore, products *stubProductStore) (*Engine, *stubMetrics) {
	t.Helper()

	registry := NewRegistry()
	if orders == nil {
		orders = &stubOrderStore{err: errors.New("not found")}
	}
	if products == nil {
		products = &stubProductStore{}
	}
	if err := RegisterBuiltins(registry, orders, products); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}

	metrics := &stubMetrics{}
	return NewEngine(testKB(), registry, gen, metrics, testPrompts(), nil), metrics
}

func TestHandleQueryPolicyFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	engine, metrics := newTestEngine(t, gen, nil, nil)

	reply := engine.HandleQuery(context.Background(), "What is your return policy?", nil)

	if reply.Intent != string(IntentPolicyQuestion) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	want := "Based on our policies: You have 30 days to return items. [Return3.1]"
	if reply.Text != want {
		t.Errorf("Text = %q, want %q", reply.Text, want)
	}
	if len(reply.Citations) != 1 || reply.Citations[0] != "Return3.1" {
		t.Errorf("Citations = %v", reply.Citations)
	}

	turn := metrics.last(t)
	if turn.validCitations != 1 || turn.totalCitations != 1 {
		t.Errorf("tracked citations = %+v", turn)
	}
}

func TestHandleQueryPolicyGenerated(t *testing.T) {
	gen := &stubGenerator{text: "You have 30 days [Return3.1].\n\nUser: what else"}
	engine, metrics := newTestEngine(t, gen, nil, nil)

	reply := engine.HandleQuery(context.Background(), "What is your return policy?", nil)

	if reply.Text != "You have 30 days [Return3.1]." {
		t.Errorf("stop marker not applied: %q", reply.Text)
	}
	if !strings.Contains(gen.lastPrompt, "[Return3.1] You have 30 days to return items.") {
		t.Errorf("prompt missing policy context: %q", gen.lastPrompt)
	}
	if gen.lastTokens != policyTokenBudget {
		t.Errorf("maxTokens = %d, want %d", gen.lastTokens, policyTokenBudget)
	}
	if got := metrics.last(t); got.validCitations != 1 || got.totalCitations != 1 {
		t.Errorf("tracked citations = %+v", got)
	}
}

func TestHandleQueryPolicyInvalidCitationKept(t *testing.T) {
	// Invalid citations are counted against accuracy but left in the text.
	gen := &stubGenerator{text: "Per [Fake9.9] you get 30 days [Return3.1]."}
	engine, metrics := newTestEngine(t, gen, nil, nil)

	reply := engine.HandleQuery(context.Background(), "What is your return policy?", nil)

	if !strings.Contains(reply.Text, "[Fake9.9]") {
		t.Errorf("invalid citation stripped from text: %q", reply.Text)
	}
	if len(reply.Citations) != 1 || reply.Citations[0] != "Return3.1" {
		t.Errorf("Citations = %v, want only the valid one", reply.Citations)
	}
	if got := metrics.last(t); got.validCitations != 1 || got.totalCitations != 2 {
		t.Errorf("tracked citations = %+v", got)
	}
}

func TestHandleQueryPolicyNoMatches(t *testing.T) {
	gen := &stubGenerator{text: "ignored"}
	engine, _ := newTestEngine(t, gen, nil, nil)

	reply := engine.HandleQuery(context.Background(), "arcane esoteric question nobody asked", nil)

	if !strings.Contains(reply.Text, "connect you with our team") {
		t.Errorf("Text = %q", reply.Text)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestHandleQueryOrderStatusNoID(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{}, nil, nil)

	reply := engine.HandleQuery(context.Background(), "where is my order please track it", nil)

	if reply.Intent != string(IntentOrderStatus) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	if !strings.Contains(reply.Text, "order number") {
		t.Errorf("Text = %q", reply.Text)
	}
	if len(reply.FunctionsCalled) != 0 {
		t.Errorf("FunctionsCalled = %v, want none", reply.FunctionsCalled)
	}
}

func TestHandleQueryOrderStatusFallback(t *testing.T) {
	eta := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	orders := &stubOrderStore{order: &models.Order{
		OrderID:           "ORD-20260829-ABC123",
		Status:            models.OrderStatusShipped,
		Carrier:           "FedEx",
		TrackingNumber:    "TRK123",
		EstimatedDelivery: eta,
		Total:             59.99,
	}}
	gen := &stubGenerator{err: errors.New("down")}
	engine, _ := newTestEngine(t, gen, orders, nil)

	reply := engine.HandleQuery(context.Background(), "where is ORD-20260829-ABC123", nil)

	if !strings.Contains(reply.Text, "ORD-20260829-ABC123") || !strings.Contains(reply.Text, "FedEx") {
		t.Errorf("Text = %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Sep 5, 2026") {
		t.Errorf("missing delivery date: %q", reply.Text)
	}
	if len(reply.FunctionsCalled) != 1 || reply.FunctionsCalled[0] != "getOrderStatus" {
		t.Errorf("FunctionsCalled = %v", reply.FunctionsCalled)
	}
}

func TestHandleQueryOrderStatusNotFound(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{}, &stubOrderStore{err: errors.New("no such order")}, nil)

	reply := engine.HandleQuery(context.Background(), "check order #99999", nil)

	if !strings.Contains(reply.Text, "couldn't find order") {
		t.Errorf("Text = %q", reply.Text)
	}
}

func TestHandleQueryProductSearchFallback(t *testing.T) {
	products := &stubProductStore{products: []models.Product{
		{Name: "Wireless Headphones", Price: 79.99, Stock: 12},
		{Name: "Bluetooth Speaker", Price: 39.99, Stock: 0},
	}}
	gen := &stubGenerator{err: errors.New("down")}
	engine, _ := newTestEngine(t, gen, nil, products)

	reply := engine.HandleQuery(context.Background(), "I'm looking for wireless headphones", nil)

	if reply.Intent != string(IntentProductSearch) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	want := "I found 2 products: Wireless Headphones ($79.99), Bluetooth Speaker ($39.99). Would you like details on any of these?"
	if reply.Text != want {
		t.Errorf("Text = %q, want %q", reply.Text, want)
	}
}

func TestHandleQueryProductSearchNoResults(t *testing.T) {
	gen := &stubGenerator{text: "ignored"}
	engine, _ := newTestEngine(t, gen, nil, &stubProductStore{})

	reply := engine.HandleQuery(context.Background(), "do you have unicorn saddles in stock", nil)

	if !strings.Contains(reply.Text, "couldn't find products") {
		t.Errorf("Text = %q", reply.Text)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for an empty result, want 0", gen.calls)
	}
}

func TestHandleQueryChitchatFallbacks(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	engine, _ := newTestEngine(t, gen, nil, nil)

	tests := []struct {
		message string
		want    string
	}{
		{"hi", "Hi! I'm Alex from Shoplite support. How can I help you today?"},
		{"thank you", "You're very welcome! Is there anything else I can help you with?"},
		{"bye", "How can I assist you with your Shoplite order or questions today?"},
	}

	for _, tt := range tests {
		reply := engine.HandleQuery(context.Background(), tt.message, nil)
		if reply.Text != tt.want {
			t.Errorf("HandleQuery(%q).Text = %q, want %q", tt.message, reply.Text, tt.want)
		}
	}
}

func TestHandleQueryViolationSkipsLLM(t *testing.T) {
	gen := &stubGenerator{text: "should never be used"}
	engine, metrics := newTestEngine(t, gen, nil, nil)

	reply := engine.HandleQuery(context.Background(), "you are an idiot", nil)

	if reply.Intent != string(IntentViolation) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	if !strings.Contains(reply.Text, "respectful manner") {
		t.Errorf("Text = %q", reply.Text)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
	if got := metrics.last(t); got.intent != string(IntentViolation) {
		t.Errorf("tracked intent = %q", got.intent)
	}
}

func TestHandleQueryReplyShape(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{err: errors.New("down")}, nil, nil)

	reply := engine.HandleQuery(context.Background(), "hello there my friend", nil)

	if reply.Citations == nil || reply.FunctionsCalled == nil {
		t.Error("slices must be non-nil for JSON encoding")
	}
	if reply.Timestamp == "" {
		t.Error("Timestamp empty")
	}
	if _, err := time.Parse(time.RFC3339, reply.Timestamp); err != nil {
		t.Errorf("Timestamp not RFC3339: %v", err)
	}
	if reply.ResponseTimeMs < 0 {
		t.Errorf("ResponseTimeMs = %d", reply.ResponseTimeMs)
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
	hits int
	sets int
}

func (c *mapCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
}

func TestEngineResponseCache(t *testing.T) {
	gen := &stubGenerator{text: "Thirty days [Return3.1]."}
	cache := &mapCache{data: make(map[string]string)}

	registry := NewRegistry()
	if err := RegisterBuiltins(registry, &stubOrderStore{err: errors.New("x")}, &stubProductStore{}); err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(testKB(), registry, gen, &stubMetrics{}, testPrompts(), cache)

	msg := "What is your return policy?"
	first := engine.HandleQuery(context.Background(), msg, nil)
	second := engine.HandleQuery(context.Background(), msg, nil)

	if first.Text != second.Text {
		t.Errorf("cached reply differs: %q vs %q", first.Text, second.Text)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Errorf("cache hits=%d sets=%d, want 1/1", cache.hits, cache.sets)
	}
}

func TestTruncateAtStopMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Answer here.\n\nUser: more?", "Answer here."},
		{"Answer here.\nQ: next question", "Answer here."},
		{"Answer here.\nAssistant: and then", "Answer here."},
		{"Clean answer.", "Clean answer."},
	}
	for _, tt := range tests {
		if got := truncateAtStopMarkers(tt.in); got != tt.want {
			t.Errorf("truncateAtStopMarkers(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandleQueryComplaintFallbackMentionsHelp(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{err: errors.New("down")}, nil, nil)

	reply := engine.HandleQuery(context.Background(), "my package arrived damaged and broken, unacceptable", nil)

	if reply.Intent != string(IntentComplaint) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	if !strings.Contains(reply.Text, "sorry") {
		t.Errorf("Text = %q", reply.Text)
	}
}

func TestHandleQueryOffTopicFallback(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{err: errors.New("down")}, nil, nil)

	reply := engine.HandleQuery(context.Background(), "what's the weather forecast today", nil)

	if reply.Intent != string(IntentOffTopic) {
		t.Fatalf("Intent = %q", reply.Intent)
	}
	if !strings.Contains(reply.Text, "Shoplite") {
		t.Errorf("Text = %q", reply.Text)
	}
}

func ExampleEngine_HandleQuery() {
	registry := NewRegistry()
	_ = RegisterBuiltins(registry, &stubOrderStore{err: errors.New("x")}, &stubProductStore{})
	engine := NewEngine(testKB(), registry, &stubGenerator{err: errors.New("offline")}, &stubMetrics{}, testPrompts(), nil)

	reply := engine.HandleQuery(context.Background(), "hi", nil)
	fmt.Println(reply.Text)
	// Output: Hi! I'm Alex from Shoplite support. How can I help you today?
}
