package animated

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns the output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugOffIsSilent(t *testing.T) {
	setup(t)
	out := captureStderr(t, func() {
		Divide(NewValue(1), NewValue(0)).Float()
	})
	if out != "" {
		t.Errorf("release mode wrote %q", out)
	}
}

func TestDebugDivisionByZero(t *testing.T) {
	setup(t)
	SetDebug(true)
	defer SetDebug(false)

	out := captureStderr(t, func() {
		Divide(NewValue(1), NewValue(0)).Float()
	})
	if !strings.Contains(out, "[animated] division by zero") {
		t.Errorf("stderr = %q", out)
	}
}

func TestDebugDetachedMutation(t *testing.T) {
	setup(t)
	SetDebug(true)
	defer SetDebug(false)

	v := NewValue(3)
	v.Detach()
	out := captureStderr(t, func() { v.SetValue(5) })
	if !strings.Contains(out, "SetValue on detached value node") {
		t.Errorf("stderr = %q", out)
	}
	if v.Float() != 3 {
		t.Errorf("detached value changed to %v", v.Float())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	setup(t)
	SetDebug(true)
	defer SetDebug(false)

	v := NewValue(0)
	cfg := InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0, 1}}
	out := captureStderr(t, func() {
		for range debugMaxChildCount + 1 {
			MustInterpolate(v, cfg)
		}
	})
	if !strings.Contains(out, "warning: value node") || !strings.Contains(out, "children") {
		t.Errorf("expected child count warning, got %q", out)
	}
}
