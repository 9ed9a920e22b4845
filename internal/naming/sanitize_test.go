package naming

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		maxLength int
		fallback  string
		want      string
	}{
		{
			name: "clean name passes through",
			raw:  "sunset_mountain_landscape", maxLength: 50, fallback: "orig",
			want: "sunset_mountain_landscape",
		},
		{
			name: "quotes and whitespace trimmed",
			raw:  `  "modern kitchen white cabinets"  `, maxLength: 50, fallback: "orig",
			want: "modern_kitchen_white_cabinets",
		},
		{
			name: "invalid characters removed",
			raw:  "red sports car! (parked)", maxLength: 50, fallback: "orig",
			want: "red_sports_car_parked",
		},
		{
			name: "separator runs collapse to one underscore",
			raw:  "a--b__c-_-d", maxLength: 50, fallback: "orig",
			want: "a_b_c_d",
		},
		{
			name: "edge separators trimmed",
			raw:  "__hello-world--", maxLength: 50, fallback: "orig",
			want: "hello_world",
		},
		{
			name: "truncated then trailing separator trimmed",
			raw:  "abcdef_ghij", maxLength: 7, fallback: "orig",
			want: "abcdef",
		},
		{
			name: "too short falls back",
			raw:  "ab", maxLength: 50, fallback: "IMG_1234",
			want: "IMG_1234",
		},
		{
			name: "empty falls back",
			raw:  "", maxLength: 50, fallback: "IMG_1234",
			want: "IMG_1234",
		},
		{
			name: "only punctuation falls back",
			raw:  "!!! ???", maxLength: 50, fallback: "IMG_1234",
			want: "IMG_1234",
		},
		{
			name: "fallback returned unchanged even if unusual",
			raw:  ".", maxLength: 50, fallback: "weird name!",
			want: "weird name!",
		},
		{
			name: "unicode stripped",
			raw:  "café au lait ☕", maxLength: 50, fallback: "orig",
			want: "caf_au_lait",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.raw, tt.maxLength, tt.fallback)
			if got != tt.want {
				t.Errorf("Sanitize(%q, %d) = %q, want %q", tt.raw, tt.maxLength, got, tt.want)
			}
		})
	}
}

// Sanitizing a sanitized value is a no-op.
func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"sunset mountain landscape",
		`"quoted description here"`,
		"a--b__c",
		"___",
		"short description with a rather long tail to trigger truncation somewhere",
		"ab",
	}
	for _, in := range inputs {
		once := Sanitize(in, 30, "fallback_stem")
		twice := Sanitize(once, 30, "fallback_stem")
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
