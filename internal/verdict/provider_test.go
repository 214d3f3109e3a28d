package verdict

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/claimlens/claimlens/internal/engine"
)

func TestExtractSources(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no URLs",
			text: "The claim is accurate based on official records.",
			want: nil,
		},
		{
			name: "trailing punctuation stripped",
			text: "See https://example.com/report. Also https://other.org/data, for context.",
			want: []string{"https://example.com/report", "https://other.org/data"},
		},
		{
			name: "duplicates collapse to first appearance",
			text: "Per https://example.com and again https://example.com plus http://second.net",
			want: []string{"https://example.com", "http://second.net"},
		},
		{
			name: "closing paren excluded",
			text: "Cited (https://example.com/a) inline.",
			want: []string{"https://example.com/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSources(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSources() = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeEngine replies with a fixed response
type fakeEngine struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeEngine) NewSession(ctx context.Context) (engine.Session, error) {
	return &fakeSession{engine: f}, nil
}

type fakeSession struct {
	engine *fakeEngine
}

func (s *fakeSession) Send(ctx context.Context, parts ...engine.Part) (string, error) {
	for _, p := range parts {
		s.engine.prompts = append(s.engine.prompts, p.Text)
	}
	if s.engine.err != nil {
		return "", s.engine.err
	}
	return s.engine.response, nil
}

func TestGeminiChecker_Check(t *testing.T) {
	eng := &fakeEngine{response: "  Verdict: TRUE. Source: https://example.com/study.  "}
	checker := NewGeminiChecker(eng, "gemini-2.0-flash")

	v, err := checker.Check(context.Background(), "the study found X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v.Text != "Verdict: TRUE. Source: https://example.com/study." {
		t.Errorf("Expected trimmed verdict text, got %q", v.Text)
	}
	if len(v.Sources) != 1 || v.Sources[0] != "https://example.com/study" {
		t.Errorf("Unexpected sources %v", v.Sources)
	}
	if v.Model != "gemini-2.0-flash" {
		t.Errorf("Unexpected model %q", v.Model)
	}

	if len(eng.prompts) != 1 {
		t.Fatalf("Expected one prompt, got %d", len(eng.prompts))
	}
	if eng.prompts[0] != "Fact check this claim: the study found X" {
		t.Errorf("Unexpected prompt %q", eng.prompts[0])
	}
}

func TestGeminiChecker_Error(t *testing.T) {
	eng := &fakeEngine{err: fmt.Errorf("overloaded")}
	checker := NewGeminiChecker(eng, "gemini-2.0-flash")

	_, err := checker.Check(context.Background(), "claim")
	if err == nil {
		t.Fatal("Expected an error")
	}
}

func TestNewChecker(t *testing.T) {
	eng := &fakeEngine{}

	tests := []struct {
		name     string
		config   Config
		eng      engine.Engine
		wantName string
		wantErr  bool
	}{
		{
			name:     "empty provider defaults to gemini",
			config:   Config{},
			eng:      eng,
			wantName: "gemini",
		},
		{
			name:     "gemini",
			config:   Config{Provider: "gemini"},
			eng:      eng,
			wantName: "gemini",
		},
		{
			name:    "gemini without engine",
			config:  Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "perplexity",
			config:   Config{Provider: "perplexity", APIKey: "pplx-test"},
			wantName: "perplexity",
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "claude"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, err := NewChecker(tt.config, tt.eng)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if checker.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", checker.Name(), tt.wantName)
			}
		})
	}
}
