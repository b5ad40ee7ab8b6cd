package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	cases := []struct {
		key  string
		val  interface{}
		want func(interface{}) bool
	}{
		{"password", "hunter2", func(v interface{}) bool { return v == "[REDACTED]" }},
		{"email", "a@b.c", func(v interface{}) bool { return v == "[REDACTED]" }},
		{"user_id", "5f1c", func(v interface{}) bool { return strings.HasPrefix(v.(string), "hash:") }},
		{"actor_id", "5f1c", func(v interface{}) bool { return strings.HasPrefix(v.(string), "hash:") }},
		{"recipe_id", "5f1c", func(v interface{}) bool { return v == "5f1c" }},
		{"header", "aaaaaaaaaaaa.bbbbbbbbbbbbb.cc", func(v interface{}) bool { return v == "[REDACTED]" }},
	}
	for _, tc := range cases {
		got := sanitizeValue(tc.key, tc.val)
		if !tc.want(got) {
			t.Fatalf("sanitizeValue(%q, %v) = %v", tc.key, tc.val, got)
		}
	}
}

func TestHashValueIsStable(t *testing.T) {
	a := hashValue("user-1")
	b := hashValue("user-1")
	if a != b {
		t.Fatalf("hash not stable: %q vs %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("empty value should hash to empty string")
	}
}
