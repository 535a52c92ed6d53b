package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestBytesEnv(t *testing.T) {
	cases := []struct {
		val      string
		expected int64
		wantErr  bool
	}{
		{"", 7, false},
		{"1024", 1024, false},
		{"2MB", 2 << 20, false},
		{"1 gb", 1 << 30, false},
		{"10b", 10, false},
		{"-1MB", 0, true},
		{"MB", 0, true},
	}

	for _, tc := range cases {
		t.Setenv("BYTES_TEST", tc.val)
		got, err := bytesEnv("BYTES_TEST", 7)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.val)
			}
			continue
		}
		if err != nil || got != tc.expected {
			t.Fatalf("expected %d for %q, got %d (%v)", tc.expected, tc.val, got, err)
		}
	}
}

func TestOptionalDurationEnv(t *testing.T) {
	t.Setenv("DUR_TEST", "0")
	if got, err := optionalDurationEnv("DUR_TEST", 5); err != nil || got != 0 {
		t.Fatalf("expected explicit zero, got %s (%v)", got, err)
	}
	t.Setenv("DUR_TEST", "-1m")
	if _, err := optionalDurationEnv("DUR_TEST", 5); err == nil {
		t.Fatalf("expected negative duration to fail")
	}
}

func TestListEnv(t *testing.T) {
	t.Setenv("LIST_TEST", "")
	if got := listEnv("LIST_TEST", "a,b"); len(got) != 2 {
		t.Fatalf("expected default list, got %v", got)
	}
	t.Setenv("LIST_TEST", " x ,, y")
	if got := listEnv("LIST_TEST", "a"); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("expected trimmed list, got %v", got)
	}
}
