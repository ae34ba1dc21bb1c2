package assistant

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const executionLogCap = 100

// Param describes one parameter of a registered function.
type Param struct {
	Type        string `json:"type"` // "string", "number" or "boolean"
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Definition is a callable the assistant may invoke during a chat turn.
type Definition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  map[string]Param `json:"parameters"`
	Execute     func(ctx context.Context, params map[string]interface{}) (interface{}, error) `json:"-"`
}

// Result is the outcome of a function execution. Failures are reported here,
// never as errors escaping Execute: the engine treats them as normal turns.
type Result struct {
	Success      bool        `json:"success"`
	Data         interface{} `json:"data,omitempty"`
	Error        string      `json:"error,omitempty"`
	FunctionName string      `json:"functionName"`
}

// LogEntry records one function execution for diagnostics.
type LogEntry struct {
	FunctionName string                 `json:"functionName"`
	Params       map[string]interface{} `json:"params"`
	Status       string                 `json:"status"` // "success" or "error"
	DurationMs   int64                  `json:"duration"`
	Error        string                 `json:"error,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
}

// RegistryStats summarizes recent executions.
type RegistryStats struct {
	Total       int              `json:"total"`
	Successful  int              `json:"successful"`
	Failed      int              `json:"failed"`
	AvgDuration int64            `json:"avgDuration"`
	ByFunction  map[string]int   `json:"byFunction"`
}

// Registry is a name-keyed map of assistant functions with parameter
// validation and a bounded execution log.
type Registry struct {
	mu           sync.Mutex
	functions    map[string]Definition
	executionLog []LogEntry
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]Definition),
	}
}

// Register adds a function. Re-registering a name overwrites the previous
// definition (last registration wins).
func (r *Registry) Register(def Definition) error {
	if def.Name == "" || def.Execute == nil {
		return fmt.Errorf("function must have name and execute method")
	}

	r.mu.Lock()
	r.functions[def.Name] = def
	r.mu.Unlock()

	log.Printf("✅ [REGISTRY] Registered: %s", def.Name)
	return nil
}

// Execute runs a registered function. Unknown names, validation failures and
// executor errors all come back as a failed Result.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]interface{}) Result {
	r.mu.Lock()
	def, ok := r.functions[name]
	r.mu.Unlock()

	if !ok {
		err := fmt.Errorf("function %q not found", name)
		r.logExecution(name, params, "error", 0, err.Error())
		return Result{Success: false, Error: err.Error(), FunctionName: name}
	}

	start := time.Now()

	if err := validateParameters(def.Parameters, params); err != nil {
		duration := time.Since(start).Milliseconds()
		r.logExecution(name, params, "error", duration, err.Error())
		log.Printf("⚠️ [REGISTRY] Validation failed: %s: %v", name, err)
		return Result{Success: false, Error: err.Error(), FunctionName: name}
	}

	data, err := def.Execute(ctx, params)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		r.logExecution(name, params, "error", duration, err.Error())
		log.Printf("❌ [REGISTRY] Error: %s: %v", name, err)
		return Result{Success: false, Error: err.Error(), FunctionName: name}
	}

	r.logExecution(name, params, "success", duration, "")
	log.Printf("✅ [REGISTRY] Success: %s (%dms)", name, duration)

	return Result{Success: true, Data: data, FunctionName: name}
}

// validateParameters checks required presence and declared types. A zero
// value ("" or 0 or false) counts as missing for required parameters; the
// original system behaved this way and callers rely on it to reject empty
// lookups.
func validateParameters(schema map[string]Param, params map[string]interface{}) error {
	for name, def := range schema {
		value, present := params[name]

		if def.Required && isZeroParam(value, present) {
			return fmt.Errorf("missing required parameter: %s", name)
		}

		if present && !isZeroParam(value, present) && def.Type != "" {
			actual := paramTypeName(value)
			if actual != def.Type {
				return fmt.Errorf("parameter %s must be %s, got %s", name, def.Type, actual)
			}
		}
	}
	return nil
}

func isZeroParam(value interface{}, present bool) bool {
	if !present || value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

func paramTypeName(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// logExecution appends to the bounded execution log, evicting oldest first.
func (r *Registry) logExecution(name string, params map[string]interface{}, status string, durationMs int64, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.executionLog = append(r.executionLog, LogEntry{
		FunctionName: name,
		Params:       params,
		Status:       status,
		DurationMs:   durationMs,
		Error:        errMsg,
		Timestamp:    time.Now(),
	})

	if len(r.executionLog) > executionLogCap {
		r.executionLog = r.executionLog[len(r.executionLog)-executionLogCap:]
	}
}

// Schemas returns all registered function schemas (for LLM context).
func (r *Registry) Schemas() []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	schemas := make([]Definition, 0, len(r.functions))
	for _, def := range r.functions {
		schemas = append(schemas, Definition{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		})
	}
	return schemas
}

// Stats summarizes the execution log.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := RegistryStats{
		Total:      len(r.executionLog),
		ByFunction: make(map[string]int),
	}

	var totalDuration int64
	for _, entry := range r.executionLog {
		if entry.Status == "success" {
			stats.Successful++
		}
		totalDuration += entry.DurationMs
		stats.ByFunction[entry.FunctionName]++
	}
	stats.Failed = stats.Total - stats.Successful

	if stats.Total > 0 {
		stats.AvgDuration = totalDuration / int64(stats.Total)
	}

	return stats
}
