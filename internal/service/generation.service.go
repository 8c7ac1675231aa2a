package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"clarifi/internal/domain"
	"clarifi/internal/llm"
	"clarifi/internal/logger"
	"clarifi/internal/util"
)

const (
	unprobed         = -1
	probeTimeout     = 5 * time.Second
	fallbackProvider = "template"
)

type tierSetting struct {
	timeout      time.Duration
	maxTokens    int
	contextChars int
}

var tierSettings = map[domain.ModelTier]tierSetting{
	domain.TierFast:     {timeout: 25 * time.Second, maxTokens: 300, contextChars: 1200},
	domain.TierDetailed: {timeout: 60 * time.Second, maxTokens: 800, contextChars: 3000},
}

// GenerationService walks the provider chain and guarantees a complete,
// non-empty response: any chain outcome short of that degrades to a
// template composed from the structured context.
type GenerationService interface {
	GenerateResponse(ctx context.Context, query string, tier domain.ModelTier, advisory *domain.AdvisoryContext, calcs []domain.Calculation) domain.ProviderResult
}

type generationServiceHandler struct {
	providers []llm.Provider

	mu        sync.Mutex
	activeIdx int
	reprobe   bool
}

func NewGenerationService(providers ...llm.Provider) GenerationService {
	return &generationServiceHandler{
		providers: providers,
		activeIdx: unprobed,
	}
}

// resolveActive returns the chain position to start from, probing the
// chain on first use and again after a connectivity failure marked the
// cached position stale.
func (h *generationServiceHandler) resolveActive(ctx context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.activeIdx != unprobed && !h.reprobe {
		return h.activeIdx
	}

	log := logger.FromContext(ctx)
	h.reprobe = false
	h.activeIdx = len(h.providers) // fallback-only until a probe passes
	for i, p := range h.providers {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.Probe(probeCtx)
		cancel()
		if err == nil {
			h.activeIdx = i
			break
		}
		log.Warnf("provider %s failed probe: %v", p.ID(), err)
	}
	return h.activeIdx
}

func (h *generationServiceHandler) noteConnectionFailure() {
	h.mu.Lock()
	h.reprobe = true
	h.mu.Unlock()
}

func (h *generationServiceHandler) promote(idx int) {
	h.mu.Lock()
	if !h.reprobe {
		h.activeIdx = idx
	}
	h.mu.Unlock()
}

func (h *generationServiceHandler) GenerateResponse(ctx context.Context, query string, tier domain.ModelTier, advisory *domain.AdvisoryContext, calcs []domain.Calculation) domain.ProviderResult {
	log := logger.FromContext(ctx)
	setting, ok := tierSettings[tier]
	if !ok {
		setting = tierSettings[domain.TierFast]
	}

	prompt := buildPrompt(query, setting.contextChars, advisory, calcs)

	for i := h.resolveActive(ctx); i < len(h.providers); i++ {
		p := h.providers[i]

		genCtx, cancel := context.WithTimeout(ctx, setting.timeout)
		text, err := p.Generate(genCtx, llm.GenerateRequest{
			Prompt:    prompt,
			Tier:      tier,
			MaxTokens: setting.maxTokens,
		})
		cancel()

		if err != nil {
			switch llm.KindOf(err) {
			case llm.ErrKindTimeout:
				log.Warnf("provider %s timed out, advancing chain: %v", p.ID(), err)
			case llm.ErrKindConnection:
				log.Warnf("provider %s unreachable, marking chain for reprobe: %v", p.ID(), err)
				h.noteConnectionFailure()
			default:
				log.Errorf("provider %s failed: %v", p.ID(), err)
			}
			continue
		}

		// incomplete output is discarded outright; a truncated answer is
		// worse than the template
		if !looksComplete(text) {
			log.Warnf("provider %s returned an incomplete response, advancing chain", p.ID())
			continue
		}

		h.promote(i)
		return domain.ProviderResult{Text: text, ProviderID: p.ID(), Complete: true}
	}

	return domain.ProviderResult{
		Text:       fallbackResponse(advisory, calcs),
		ProviderID: fallbackProvider,
		Complete:   true,
	}
}

// words that signal a sentence was cut off mid-thought
var danglingWords = map[string]bool{
	"and": true, "or": true, "but": true, "the": true, "a": true,
	"an": true, "to": true, "of": true, "in": true, "with": true,
	"for": true, "is": true, "are": true, "your": true, "you": true,
	"if": true, "so": true, "because": true, "then": true, "as": true,
	"at": true, "by": true, "will": true, "can": true, "should": true,
}

// looksComplete rejects responses that end without terminal punctuation
// or trail off on a dangling word.
func looksComplete(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 20 {
		return false
	}

	if !strings.ContainsAny(t[len(t)-1:], `.!?)"'`) {
		return false
	}

	words := strings.Fields(strings.ToLower(strings.TrimRight(t, ".!?)\"' \t\n")))
	if len(words) == 0 {
		return false
	}
	return !danglingWords[words[len(words)-1]]
}

// clip truncates to at most max bytes, backing up to a rune boundary so
// a multibyte character (₹ in the knowledge text) is never split.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func buildPrompt(query string, contextChars int, advisory *domain.AdvisoryContext, calcs []domain.Calculation) string {
	var b strings.Builder
	b.WriteString("You are ClariFi, a personal financial advisor for Indian households. ")
	b.WriteString("Answer clearly and practically. Use Indian currency conventions (lakh, crore, ₹).\n\n")

	if advisory != nil && advisory.Snapshot != nil {
		s := advisory.Snapshot
		b.WriteString(fmt.Sprintf(
			"User's financial snapshot: monthly income %s, monthly expenses %s, savings rate %.1f%%, total investments %s, outstanding loans %s, risk profile %s.\n\n",
			util.FormatINRDecimal(s.MonthlyIncome),
			util.FormatINRDecimal(s.MonthlyExpenses),
			s.SavingsRate,
			util.FormatINRDecimal(s.TotalInvestments),
			util.FormatINRDecimal(s.TotalLoans),
			s.RiskProfile,
		))
	}

	if len(calcs) > 0 {
		b.WriteString("Calculations already performed - treat these numbers as authoritative, do not recompute:\n")
		for _, c := range calcs {
			b.WriteString(string(c.Kind()))
			b.WriteString(": ")
			parts := []string{}
			for _, f := range c.Fields() {
				parts = append(parts, f.Label+" "+f.Value)
			}
			b.WriteString(strings.Join(parts, "; "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if advisory != nil && advisory.Recommendations != nil && len(advisory.Recommendations.Stocks) > 0 {
		b.WriteString("Current market data:\n")
		for _, s := range advisory.Recommendations.Stocks {
			b.WriteString(fmt.Sprintf("- %s (%s): %s, %.1f%% today. %s\n",
				s.Symbol, s.Name, util.FormatINR(s.Price), s.ChangePercent, s.Reason))
		}
		if sip := advisory.Recommendations.SIP; sip != nil {
			b.WriteString(fmt.Sprintf("Suggested SIP from spare savings: %s per month.\n",
				util.FormatINR(sip.MonthlyAmount)))
		}
		b.WriteString("\n")
	}

	// soft context is budgeted per tier; hard numbers above are not
	var soft strings.Builder
	if advisory != nil && len(advisory.Knowledge) > 0 {
		soft.WriteString("Relevant knowledge:\n")
		for _, chunk := range advisory.Knowledge {
			soft.WriteString(fmt.Sprintf("[%s] %s\n", chunk.Source, chunk.Content))
		}
		soft.WriteString("\n")
	}
	if advisory != nil && len(advisory.History) > 0 {
		soft.WriteString("Recent conversation:\n")
		for _, turn := range advisory.History {
			soft.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
		soft.WriteString("\n")
	}
	b.WriteString(clip(soft.String(), contextChars))

	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\nAnswer:")
	return b.String()
}

// fallbackResponse narrates whatever structured context exists, in
// priority order: market data, calculations, snapshot, knowledge, and
// finally a clarification request. It never returns an empty string.
func fallbackResponse(advisory *domain.AdvisoryContext, calcs []domain.Calculation) string {
	if advisory != nil && advisory.Recommendations != nil && len(advisory.Recommendations.Stocks) > 0 {
		var b strings.Builder
		b.WriteString("Based on current market data, here are stocks worth a look:\n")
		for _, s := range advisory.Recommendations.Stocks {
			b.WriteString(fmt.Sprintf("- %s (%s): %s, %.1f%% today - %s\n",
				s.Name, s.Symbol, util.FormatINR(s.Price), s.ChangePercent, s.Reason))
		}
		if len(advisory.Recommendations.Allocation) > 0 {
			b.WriteString(fmt.Sprintf(
				"A suggested split for your profile: %.0f%% equity, %.0f%% debt, %.0f%% gold. ",
				advisory.Recommendations.Allocation["equity"],
				advisory.Recommendations.Allocation["debt"],
				advisory.Recommendations.Allocation["gold"],
			))
		}
		if sip := advisory.Recommendations.SIP; sip != nil {
			b.WriteString(fmt.Sprintf(
				"A SIP of about %s per month would put your spare savings to work across that split. ",
				util.FormatINR(sip.MonthlyAmount),
			))
		}
		b.WriteString("Do your own research or consult a registered advisor before investing.")
		return b.String()
	}

	if len(calcs) > 0 {
		var b strings.Builder
		b.WriteString("Here's what I calculated from the numbers you gave:\n")
		for _, c := range calcs {
			for _, f := range c.Fields() {
				b.WriteString(fmt.Sprintf("- %s: %s\n", f.Label, f.Value))
			}
		}
		b.WriteString("Let me know if you'd like me to rerun this with different assumptions.")
		return b.String()
	}

	if advisory != nil && advisory.Snapshot != nil {
		s := advisory.Snapshot
		return fmt.Sprintf(
			"Here's a quick look at your finances: monthly income %s against expenses of %s leaves you a savings rate of %.1f%%. "+
				"Your investments total %s with %s in outstanding loans. "+
				"Ask me about a specific goal, loan, or investment and I can go deeper.",
			util.FormatINRDecimal(s.MonthlyIncome),
			util.FormatINRDecimal(s.MonthlyExpenses),
			s.SavingsRate,
			util.FormatINRDecimal(s.TotalInvestments),
			util.FormatINRDecimal(s.TotalLoans),
		)
	}

	if advisory != nil && len(advisory.Knowledge) > 0 {
		chunk := advisory.Knowledge[0]
		return fmt.Sprintf("%s (source: %s)", chunk.Content, chunk.Source)
	}

	return "I couldn't find enough context to answer that well. " +
		"Could you rephrase with a bit more detail - for example the amounts, rates, or timeframes involved?"
}
