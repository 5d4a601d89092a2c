// Package summarizer condenses company descriptions and rates leads with a
// language model, falling back to deterministic answers when the model is
// unavailable.
package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

const (
	minSummaryInput   = 50
	fallbackSummary   = 200
	defaultScore      = 50
	noReasoning       = "No analysis provided"
	analysisFailedMsg = "Unable to analyze due to an error"
)

// Generator produces model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, asJSON bool) (string, error)
}

// Subject is the company information a lead analysis is based on.
type Subject struct {
	Name        string
	Industry    string
	Size        string
	Description string
	Social      []string
}

// Analysis rates a lead between 0 and 100.
type Analysis struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Service implements summaries and lead analysis on top of a Generator.
// A nil generator always yields the fallbacks.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Service.
func New(gen Generator, opts ...Option) *Service {
	s := &Service{gen: gen, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize condenses description to two or three sentences. Short input is
// returned unchanged and model failures fall back to a truncation.
func (s *Service) Summarize(ctx context.Context, description string) string {
	if utf8.RuneCountInString(description) < minSummaryInput {
		return description
	}
	if s.gen == nil {
		return truncate(description, fallbackSummary)
	}

	prompt := "Please summarize the following company description in a concise, " +
		"professional manner (2-3 sentences max):\n\n" + description
	summary, err := s.gen.Generate(ctx, prompt, false)
	if err != nil || strings.TrimSpace(summary) == "" {
		s.logger.Warn("summarize failed", zap.Error(err))
		return truncate(description, fallbackSummary)
	}
	return strings.TrimSpace(summary)
}

// Analyze rates subject as a sales lead.
func (s *Service) Analyze(ctx context.Context, subject Subject) Analysis {
	if s.gen == nil {
		return Analysis{Score: defaultScore, Reasoning: analysisFailedMsg}
	}

	raw, err := s.gen.Generate(ctx, analysisPrompt(subject), true)
	if err != nil {
		s.logger.Warn("lead analysis failed", zap.String("company", subject.Name), zap.Error(err))
		return Analysis{Score: defaultScore, Reasoning: analysisFailedMsg}
	}
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		s.logger.Warn("lead analysis unparsable", zap.String("company", subject.Name), zap.Error(err))
		return Analysis{Score: defaultScore, Reasoning: analysisFailedMsg}
	}
	return analysis
}

func analysisPrompt(subject Subject) string {
	var b strings.Builder
	b.WriteString("Analyze this company as a potential sales lead. ")
	b.WriteString("Rate its potential value on a scale of 1-100 and provide a brief explanation for this rating. ")
	b.WriteString("Respond in JSON format with 'score' (number) and 'reasoning' (text) fields.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", orDefault(subject.Name, "Unknown"))
	fmt.Fprintf(&b, "Industry: %s\n", orDefault(subject.Industry, "Unknown"))
	fmt.Fprintf(&b, "Size: %s\n", orDefault(subject.Size, "Unknown"))
	fmt.Fprintf(&b, "Description: %s\n", orDefault(subject.Description, "N/A"))
	fmt.Fprintf(&b, "Social Media Presence: %s", strings.Join(subject.Social, ", "))
	return b.String()
}

type rawAnalysis struct {
	Score     json.RawMessage `json:"score"`
	Reasoning *string         `json:"reasoning"`
}

// ParseAnalysis decodes a model answer, repairing malformed JSON. A missing
// score defaults to 50 and scores are clamped to 0..100.
func ParseAnalysis(content string) (Analysis, error) {
	content = stripCodeFence(content)
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return Analysis{}, fmt.Errorf("repair analysis json: %w", repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis: %w", err)
		}
	}

	out := Analysis{Score: defaultScore, Reasoning: noReasoning}
	if raw.Reasoning != nil && strings.TrimSpace(*raw.Reasoning) != "" {
		out.Reasoning = strings.TrimSpace(*raw.Reasoning)
	}
	if len(raw.Score) > 0 && string(raw.Score) != "null" {
		score, err := strconv.ParseFloat(strings.Trim(string(raw.Score), `"`), 64)
		if err != nil {
			return Analysis{}, fmt.Errorf("decode score %s: %w", raw.Score, err)
		}
		out.Score = int(math.Round(math.Max(0, math.Min(100, score))))
	}
	return out, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
