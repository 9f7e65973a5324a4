package env

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("DEBRIS_TEST_STRING", "value")
	if got := GetEnv("DEBRIS_TEST_STRING", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %q, want %q", got, "value")
	}
	if got := GetEnv("DEBRIS_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}

func TestGetFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		fallback float64
		want     float64
	}{
		{name: "parses value", value: "0.42", set: true, fallback: 0.24, want: 0.42},
		{name: "missing uses fallback", fallback: 0.24, want: 0.24},
		{name: "garbage uses fallback", value: "high", set: true, fallback: 0.24, want: 0.24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("DEBRIS_TEST_FLOAT", tt.value)
			}
			if got := GetFloat("DEBRIS_TEST_FLOAT", tt.fallback); got != tt.want {
				t.Errorf("GetFloat() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("DEBRIS_TEST_INT", "19")
	if got := GetInt("DEBRIS_TEST_INT", 18); got != 19 {
		t.Errorf("GetInt() = %d, want 19", got)
	}
	t.Setenv("DEBRIS_TEST_INT", "deep")
	if got := GetInt("DEBRIS_TEST_INT", 18); got != 18 {
		t.Errorf("GetInt() = %d, want fallback 18", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("DEBRIS_TEST_BOOL", "true")
	if got := GetBool("DEBRIS_TEST_BOOL", false); !got {
		t.Error("GetBool() = false, want true")
	}
	if got := GetBool("DEBRIS_TEST_BOOL_MISSING", true); !got {
		t.Error("GetBool() = false, want fallback true")
	}
}
