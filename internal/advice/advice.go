// Package advice asks an external text-generation service for a short
// hydration tip. Failures never reach the caller: every error collapses to a
// fixed fallback message.
package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/waterflow/internal/hydration"
	"github.com/sadopc/waterflow/internal/log"
)

const (
	// Temperature is the sampling temperature sent with every request.
	Temperature = 0.7

	EmptyReplyText = "No advice available right now. Keep sipping!"
	ErrorText      = "Could not reach the hydration coach. Please try again in a moment."
)

// ErrNotConfigured is returned by collaborators that have no credentials.
var ErrNotConfigured = errors.New("advice provider not configured")

// Request is what crosses the collaborator boundary.
type Request struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       float64
}

// Generator is the external text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Stats are the figures the prompt is built from.
type Stats struct {
	Total int
	Goal  int
	Count int
	At    time.Time
}

// Result is either advice text from the collaborator or a fallback message.
type Result struct {
	Text     string
	Fallback bool
}

func ok(text string) Result       { return Result{Text: text} }
func fallback(text string) Result { return Result{Text: text, Fallback: true} }

// Gateway formats prompts and calls a Generator. It holds no per-call state;
// callers that need at most one request in flight must enforce that.
type Gateway struct {
	gen      Generator
	model    string
	language string
	timeout  time.Duration
	logger   *log.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithModel sets the model name passed to the collaborator.
func WithModel(model string) Option {
	return func(g *Gateway) { g.model = model }
}

// WithLanguage sets the language the coach replies in.
func WithLanguage(lang string) Option {
	return func(g *Gateway) {
		if lang != "" {
			g.language = lang
		}
	}
}

// WithTimeout bounds a single call. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger sets the logger; records carry the "advice" component.
func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) { g.logger = l.WithComponent("advice") }
}

// NewGateway wraps gen. Replies default to English and logs are discarded
// unless options say otherwise.
func NewGateway(gen Generator, opts ...Option) *Gateway {
	g := &Gateway{
		gen:      gen,
		language: "English",
		logger:   log.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequestAdvice asks the collaborator for advice on s. It always returns a
// displayable Result.
func (g *Gateway) RequestAdvice(ctx context.Context, s Stats) Result {
	if s.Goal <= 0 {
		g.logger.WarnContext(ctx, "advice skipped", "error", hydration.ErrInvalidGoal)
		return fallback(ErrorText)
	}
	if s.At.IsZero() {
		s.At = time.Now()
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, Request{
		Model:             g.model,
		SystemInstruction: SystemInstruction(g.language),
		Prompt:            Prompt(s, g.language),
		Temperature:       Temperature,
	})
	if err != nil {
		g.logger.WarnContext(ctx, "advice request failed", "error", err, "elapsed", time.Since(start))
		return fallback(ErrorText)
	}

	if strings.TrimSpace(text) == "" {
		g.logger.WarnContext(ctx, "advice reply empty", "elapsed", time.Since(start))
		return fallback(EmptyReplyText)
	}
	g.logger.InfoContext(ctx, "advice received", "chars", len(text), "elapsed", time.Since(start))
	return ok(text)
}

// SystemInstruction is the fixed coach persona.
func SystemInstruction(language string) string {
	return fmt.Sprintf("You are a friendly hydration coach and personal health assistant. You speak %s naturally and encouragingly.", language)
}

// Prompt renders today's figures into the request text.
func Prompt(s Stats, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current time: %s\n", s.At.Format("15:04"))
	fmt.Fprintf(&b, "User's water intake today: %d ml\n", s.Total)
	fmt.Fprintf(&b, "Daily goal: %d ml\n", s.Goal)
	fmt.Fprintf(&b, "Progress: %d%%\n", hydration.Percent(s.Total, s.Goal))
	fmt.Fprintf(&b, "Number of drinks recorded: %d\n\n", s.Count)
	fmt.Fprintf(&b, "Please give short, friendly and encouraging hydration advice in %s based on this data.\n", language)
	b.WriteString("If they are far behind, encourage them gently.\n")
	b.WriteString("If they are on track, congratulate them.\n")
	b.WriteString("If they drank too much too fast, warn them gently.\n")
	b.WriteString("Keep it under 3 sentences.")
	return b.String()
}

// Disabled is the collaborator used when no provider is configured.
type Disabled struct{}

// Generate always fails with ErrNotConfigured.
func (Disabled) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
