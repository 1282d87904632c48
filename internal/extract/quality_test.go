// ABOUTME: Tests for the required-heading quality gate
package extract

import "testing"

func TestPassesQualityGate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "has both required headings",
			text: "ONE SENTENCE SUMMARY\ndid a thing\n\nMAIN IDEAS\n- thing one",
			want: true,
		},
		{
			name: "case insensitive",
			text: "one sentence summary\ndid a thing\n\nmain ideas\n- thing one",
			want: true,
		},
		{
			name: "missing main ideas",
			text: "ONE SENTENCE SUMMARY\ndid a thing",
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassesQualityGate(tt.text); got != tt.want {
				t.Errorf("PassesQualityGate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
