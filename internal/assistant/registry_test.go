package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func echoDefinition(name string) Definition {
	return Definition{
		Name:        name,
		Description: "echoes its input",
		Parameters: map[string]Param{
			"value": {Type: "string", Required: true},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			return params["value"], nil
		},
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(echoDefinition("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := r.Register(Definition{Name: "noExec"}); err == nil {
		t.Error("Register without executor should fail")
	}
	if err := r.Register(Definition{Execute: func(ctx context.Context, p map[string]interface{}) (interface{}, error) { return nil, nil }}); err == nil {
		t.Error("Register without name should fail")
	}
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	r := NewRegistry()

	def := echoDefinition("echo")
	if err := r.Register(def); err != nil {
		t.Fatal(err)
	}

	def.Execute = func(ctx context.Context, p map[string]interface{}) (interface{}, error) {
		return "replaced", nil
	}
	if err := r.Register(def); err != nil {
		t.Fatal(err)
	}

	result := r.Execute(context.Background(), "echo", map[string]interface{}{"value": "x"})
	if result.Data != "replaced" {
		t.Errorf("Data = %v, want replaced (last registration wins)", result.Data)
	}
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoDefinition("echo")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(Definition{
		Name: "boom",
		Execute: func(ctx context.Context, p map[string]interface{}) (interface{}, error) {
			return nil, errors.New("kaboom")
		},
	}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		result := r.Execute(ctx, "echo", map[string]interface{}{"value": "hi"})
		if !result.Success || result.Data != "hi" || result.FunctionName != "echo" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("unknown function", func(t *testing.T) {
		result := r.Execute(ctx, "missing", nil)
		if result.Success {
			t.Fatal("Success = true for unknown function")
		}
		if !strings.Contains(result.Error, "not found") {
			t.Errorf("Error = %q", result.Error)
		}
	})

	t.Run("executor error becomes failed result", func(t *testing.T) {
		result := r.Execute(ctx, "boom", nil)
		if result.Success || result.Error != "kaboom" {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}

func TestRegistryParameterValidation(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Definition{
		Name: "fn",
		Parameters: map[string]Param{
			"name":  {Type: "string", Required: true},
			"count": {Type: "number", Required: false},
		},
		Execute: func(ctx context.Context, p map[string]interface{}) (interface{}, error) {
			return "ok", nil
		},
	}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantOK  bool
		wantErr string
	}{
		{"valid", map[string]interface{}{"name": "a", "count": 3}, true, ""},
		{"optional omitted", map[string]interface{}{"name": "a"}, true, ""},
		{"required missing", map[string]interface{}{}, false, "missing required parameter: name"},
		{"required empty string counts as missing", map[string]interface{}{"name": ""}, false, "missing required parameter: name"},
		{"wrong type", map[string]interface{}{"name": "a", "count": "three"}, false, "parameter count must be number, got string"},
		{"float is number", map[string]interface{}{"name": "a", "count": 2.5}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Execute(ctx, "fn", tt.params)
			if result.Success != tt.wantOK {
				t.Fatalf("Success = %v, want %v (err=%q)", result.Success, tt.wantOK, result.Error)
			}
			if tt.wantErr != "" && result.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", result.Error, tt.wantErr)
			}
		})
	}
}

func TestRegistryExecutionLogBounded(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoDefinition("echo")); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < executionLogCap+20; i++ {
		r.Execute(ctx, "echo", map[string]interface{}{"value": fmt.Sprintf("v%d", i)})
	}

	stats := r.Stats()
	if stats.Total != executionLogCap {
		t.Errorf("Total = %d, want %d", stats.Total, executionLogCap)
	}
	if stats.Successful != executionLogCap {
		t.Errorf("Successful = %d, want %d", stats.Successful, executionLogCap)
	}
}

func TestRegistryStats(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoDefinition("echo")); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	r.Execute(ctx, "echo", map[string]interface{}{"value": "a"})
	r.Execute(ctx, "echo", map[string]interface{}{"value": ""}) // validation failure
	r.Execute(ctx, "nope", nil)

	stats := r.Stats()
	if stats.Total != 3 || stats.Successful != 1 || stats.Failed != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByFunction["echo"] != 2 || stats.ByFunction["nope"] != 1 {
		t.Errorf("ByFunction = %v", stats.ByFunction)
	}
}

func TestRegistrySchemasOmitExecutors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoDefinition("echo")); err != nil {
		t.Fatal(err)
	}

	schemas := r.Schemas()
	if len(schemas) != 1 {
		t.Fatalf("len = %d, want 1", len(schemas))
	}
	if schemas[0].Execute != nil {
		t.Error("schema should not expose the executor")
	}
	if schemas[0].Name != "echo" || len(schemas[0].Parameters) != 1 {
		t.Errorf("schema = %+v", schemas[0])
	}
}
