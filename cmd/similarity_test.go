package cmd

import (
	"strings"
	"testing"
)

func TestValidatePairArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"one pair", []string{"house", "home"}, false},
		{"two pairs", []string{"house", "home", "water", "sea"}, false},
		{"no args", nil, true},
		{"single word", []string{"house"}, true},
		{"odd count", []string{"house", "home", "water"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePairArgs(similarityCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePairArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestEncodeIndentedJSON(t *testing.T) {
	var buf strings.Builder
	if err := encodeIndentedJSON(&buf, map[string]int{"words": 3}); err != nil {
		t.Fatalf("encodeIndentedJSON() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, `"words": 3`) {
		t.Errorf("output missing indented field, got %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("output should end with a newline")
	}
}
