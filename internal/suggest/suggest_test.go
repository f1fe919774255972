package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/config"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	gotModel  string
	gotConfig *genai.GenerateContentConfig
	gotPrompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Suggestion
		wantErr bool
	}{
		{name: "plain", text: `{"hue": 210, "saturation": 60}`, want: Suggestion{Hue: 210, Saturation: 60}},
		{name: "fractional", text: `{"hue": 12.5, "saturation": 55.5}`, want: Suggestion{Hue: 12.5, Saturation: 55.5}},
		{name: "fenced", text: "```json\n{\"hue\": 30, \"saturation\": 70}\n```", want: Suggestion{Hue: 30, Saturation: 70}},
		{name: "extra fields", text: `{"hue": 1, "saturation": 2, "why": "calm"}`, want: Suggestion{Hue: 1, Saturation: 2}},
		{name: "string hue", text: `{"hue": "210", "saturation": 60}`, wantErr: true},
		{name: "missing saturation", text: `{"hue": 210}`, wantErr: true},
		{name: "not json", text: `Try a calm blue.`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestion(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResponse) {
					t.Errorf("ParseSuggestion() error = %v, want ErrInvalidResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSuggestion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSuggestion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSuggestionSeed(t *testing.T) {
	tests := []struct {
		in   Suggestion
		want colour.Seed
	}{
		{in: Suggestion{Hue: 210, Saturation: 60}, want: colour.Seed{Hue: 210, Saturation: 60}},
		{in: Suggestion{Hue: 370, Saturation: 59.6}, want: colour.Seed{Hue: 10, Saturation: 60}},
		{in: Suggestion{Hue: -30, Saturation: 140}, want: colour.Seed{Hue: 330, Saturation: 100}},
		{in: Suggestion{Hue: 360, Saturation: -5}, want: colour.Seed{Hue: 0, Saturation: 0}},
	}
	for _, tt := range tests {
		if got := tt.in.Seed(); got != tt.want {
			t.Errorf("%+v.Seed() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSuggest(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"hue": 200, "saturation": 45}`)}
	g := newGemini(fake, config.DefaultAIModel, time.Second, nil)

	got, err := g.Suggest(context.Background())
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if got != (Suggestion{Hue: 200, Saturation: 45}) {
		t.Errorf("Suggest() = %+v", got)
	}
	if fake.gotModel != config.DefaultAIModel {
		t.Errorf("model = %q, want %q", fake.gotModel, config.DefaultAIModel)
	}
	if fake.gotConfig == nil || fake.gotConfig.ResponseMIMEType != "application/json" {
		t.Errorf("config = %+v, want JSON response type", fake.gotConfig)
	}
	if fake.gotPrompt != Prompt {
		t.Errorf("prompt = %q", fake.gotPrompt)
	}
}

func TestGeminiSuggestErrors(t *testing.T) {
	tests := []struct {
		name  string
		fake  *fakeModels
		check func(error) bool
	}{
		{
			name:  "transport error",
			fake:  &fakeModels{err: errors.New("quota exceeded")},
			check: func(err error) bool { return err != nil && !errors.Is(err, ErrNoResponse) },
		},
		{
			name:  "no candidates",
			fake:  &fakeModels{resp: &genai.GenerateContentResponse{}},
			check: func(err error) bool { return errors.Is(err, ErrNoResponse) },
		},
		{
			name:  "empty text",
			fake:  &fakeModels{resp: textResponse("")},
			check: func(err error) bool { return errors.Is(err, ErrNoResponse) },
		},
		{
			name:  "bad json",
			fake:  &fakeModels{resp: textResponse(`{"hue": "blue"}`)},
			check: func(err error) bool { return errors.Is(err, ErrInvalidResponse) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGemini(tt.fake, "m", 0, nil).Suggest(context.Background())
			if !tt.check(err) {
				t.Errorf("Suggest() error = %v", err)
			}
		})
	}
}

func TestSeededPalette(t *testing.T) {
	gen := colour.NewGenerator(colour.WithRandomSource(func() float64 { return 0.5 }))

	p, used := SeededPalette(context.Background(), Static{Hue: 210, Saturation: 60}, gen, colour.ModeCohesive, nil)
	if !used {
		t.Error("SeededPalette() did not use the suggestion")
	}
	if p.Hue != 210 || p.Saturation != 60 {
		t.Errorf("palette = hue %v sat %d, want 210/60", p.Hue, p.Saturation)
	}

	p, used = SeededPalette(context.Background(), Disabled{}, gen, colour.ModeCohesive, nil)
	if used {
		t.Error("SeededPalette() reported the suggestion used after a failure")
	}
	if p.Hue != 180 || p.Saturation != 60 {
		t.Errorf("fallback palette = hue %v sat %d, want random path 180/60", p.Hue, p.Saturation)
	}
	if len(p.Colours) != colour.SlotCount {
		t.Errorf("fallback palette has %d colours", len(p.Colours))
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), config.AIConfig{Backend: config.BackendGeminiAPI, Model: "m"}, nil)
	if err == nil {
		t.Error("NewGemini() without API key succeeded")
	}
}
