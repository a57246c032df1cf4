package object

import "testing"

func TestInspect(t *testing.T) {
	tests := []struct {
		obj      Object
		expected string
	}{
		{&Number{Value: 120}, "120"},
		{&Number{Value: 3.5}, "3.5"},
		{&String{Value: "hello"}, "hello"},
		{TRUE, "true"},
		{FALSE, "false"},
		{&Option{Value: &Number{Value: 1}, Present: true}, "Some(1)"},
		{&Option{}, "None"},
		{&Result{Ok: true, Value: &Number{Value: 2}}, "Ok(2)"},
		{&Result{Ok: false, Value: &String{Value: "boom"}}, "Err(boom)"},
		{&Builtin{Name: "print"}, "builtin function print"},
		{&Error{Message: "division by zero"}, "runtime error: division by zero"},
		{UNINITIALIZED, "uninitialized"},
	}

	for i, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.expected {
			t.Errorf("tests[%d] - Inspect() wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestValueEquality(t *testing.T) {
	tests := []struct {
		a, b     Object
		expected bool
	}{
		{&Number{Value: 1}, &Number{Value: 1}, true},
		{&Number{Value: 1}, &Number{Value: 2}, false},
		{&String{Value: "a"}, &String{Value: "a"}, true},
		{TRUE, &Boolean{Value: true}, true},
		{&Option{Value: &Number{Value: 1}, Present: true}, &Option{Value: &Number{Value: 1}, Present: true}, true},
		{&Option{Value: &Number{Value: 1}, Present: true}, &Option{}, false},
		{&Option{}, &Option{}, true},
		{&Result{Ok: true, Value: &Number{Value: 1}}, &Result{Ok: false, Value: &Number{Value: 1}}, false},
		// Cross-variant comparisons are always unequal.
		{&Number{Value: 1}, &String{Value: "1"}, false},
		{TRUE, &Number{Value: 1}, false},
	}

	for i, tt := range tests {
		if got := Equals(tt.a, tt.b); got != tt.expected {
			t.Errorf("tests[%d] - Equals(%s, %s) = %t, want %t",
				i, tt.a.Inspect(), tt.b.Inspect(), got, tt.expected)
		}
	}
}

func TestEnvironmentCopyIsolation(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &Number{Value: 1}, true)

	inner := env.Copy()
	if _, err := inner.Assign("x", &Number{Value: 2}); err != nil {
		t.Fatalf("assign failed: %s", err)
	}
	inner.Define("y", &Number{Value: 3}, true)

	// The outer environment is untouched by the copy's mutations.
	outerX, _ := env.Get("x")
	if outerX.(*Number).Value != 1 {
		t.Errorf("outer x changed to %s", outerX.Inspect())
	}
	if _, ok := env.Get("y"); ok {
		t.Errorf("block-scoped declaration leaked into the outer environment")
	}

	innerX, _ := inner.Get("x")
	if innerX.(*Number).Value != 2 {
		t.Errorf("inner x is %s, want 2", innerX.Inspect())
	}
}

func TestEnvironmentMutability(t *testing.T) {
	env := NewEnvironment()
	env.Define("c", &Number{Value: 1}, false)

	if _, err := env.Assign("c", &Number{Value: 2}); err == nil {
		t.Errorf("expected assignment to constant to fail")
	}
	if _, err := env.Assign("missing", &Number{Value: 2}); err == nil {
		t.Errorf("expected assignment to undefined name to fail")
	}
}
