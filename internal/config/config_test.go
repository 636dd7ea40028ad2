package config

import (
	"reflect"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV", "set-value")

	if got := getenv("TEST_GETENV", "fallback"); got != "set-value" {
		t.Errorf("getenv() = %v, want set-value", got)
	}
	if got := getenv("TEST_GETENV_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getenv() = %v, want fallback", got)
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{name: "valid int", value: "42", def: 10, want: 42},
		{name: "invalid int uses default", value: "abc", def: 10, want: 10},
		{name: "empty uses default", value: "", def: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_GETENV_INT", tt.value)
			}
			if got := getenvInt("TEST_GETENV_INT", tt.def); got != tt.want {
				t.Errorf("getenvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", value: "30s", def: time.Minute, want: 30 * time.Second},
		{name: "invalid duration uses default", value: "not-a-duration", def: time.Minute, want: time.Minute},
		{name: "empty uses default", value: "", def: time.Minute, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_MUST_DURATION", tt.value)
			}
			if got := mustDuration("TEST_MUST_DURATION", tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{name: "true", value: "true", def: false, want: true},
		{name: "false", value: "false", def: true, want: false},
		{name: "invalid uses default", value: "yep", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_MUST_BOOL", tt.value)
			if got := mustBool("TEST_MUST_BOOL", tt.def); got != tt.want {
				t.Errorf("mustBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "openid", want: []string{"openid"}},
		{name: "spaces and quotes", input: ` openid , "email" , 'profile' `, want: []string{"openid", "email", "profile"}},
		{name: "drops empty parts", input: "openid,,email,", want: []string{"openid", "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitAndTrim(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
