package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

// Per-category outcome statuses reported in a run summary.
const (
	OutcomeOK            = "ok"
	OutcomeProviderError = "provider_error"
	OutcomeParseFailure  = "parse_failure"
	OutcomeStoreError    = "store_error"
)

// CategoryOutcome records what happened to one category during a run.
type CategoryOutcome struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	TrendID  string `json:"trendId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RunSummary aggregates one generation run. The run as a whole succeeds
// even when individual categories failed.
type RunSummary struct {
	StartedAt   time.Time         `json:"startedAt"`
	Duration    string            `json:"duration"`
	Deactivated int64             `json:"deactivated"`
	Outcomes    []CategoryOutcome `json:"outcomes"`
}

// GenerationService runs the scheduled trend regeneration: retire every
// active trend, then propose a fresh option pair per category.
type GenerationService struct {
	trends   TrendStore
	history  HistoryStore
	provider TextProvider
	cache    *CacheService

	categories    []string
	historyWindow time.Duration // dedup hint window
	callTimeout   time.Duration // per provider call
}

func NewGenerationService(trends TrendStore, history HistoryStore, provider TextProvider,
	cache *CacheService, historyMonths, timeoutSeconds int) *GenerationService {
	return &GenerationService{
		trends:        trends,
		history:       history,
		provider:      provider,
		cache:         cache,
		categories:    model.Categories,
		historyWindow: time.Duration(historyMonths) * 30 * 24 * time.Hour,
		callTimeout:   time.Duration(timeoutSeconds) * time.Second,
	}
}

// Run executes one generation run. The retire phase must complete before any
// insert begins, so no reader ever observes two active trends for a category;
// a brief window with zero active trends is acceptable. If the retire phase
// itself fails nothing else can proceed and the error is returned.
func (s *GenerationService) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()

	deactivated, err := s.trends.DeactivateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: deactivate: %v", ErrUnavailable, err)
	}
	log.Printf("generation: retired %d active trends", deactivated)

	// Categories are independent: one slow or failing provider call must
	// not serialize or abort the others.
	outcomes := make([]CategoryOutcome, len(s.categories))
	var wg sync.WaitGroup
	for i, category := range s.categories {
		wg.Add(1)
		go func(i int, category string) {
			defer wg.Done()
			outcomes[i] = s.generateOne(ctx, category)
		}(i, category)
	}
	wg.Wait()

	if s.cache != nil {
		if err := s.cache.InvalidateActiveTrends(ctx); err != nil {
			log.Printf("cache: invalidate error after generation: %v", err)
		}
	}

	summary := &RunSummary{
		StartedAt:   start.UTC(),
		Duration:    time.Since(start).Round(time.Millisecond).String(),
		Deactivated: deactivated,
		Outcomes:    outcomes,
	}

	ok := 0
	for _, o := range outcomes {
		if o.Status == OutcomeOK {
			ok++
		}
	}
	log.Printf("generation: run complete — %d/%d categories succeeded (%s)",
		ok, len(outcomes), summary.Duration)

	return summary, nil
}

// generateOne handles a single category end to end. Failures leave the
// category without an active trend until the next scheduled run; there is
// no retry within a run.
func (s *GenerationService) generateOne(ctx context.Context, category string) CategoryOutcome {
	since := time.Now().Add(-s.historyWindow)
	past, err := s.history.RecentTexts(ctx, category, since)
	if err != nil {
		// The dedup list is a hint only; generate without it rather than
		// skipping the category.
		log.Printf("generation: %s: history fetch failed, prompting without dedup list: %v", category, err)
		past = nil
	}

	prompt := BuildPrompt(category, past)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, prompt)
	if err != nil {
		log.Printf("generation: %s: provider error: %v", category, err)
		return CategoryOutcome{Category: category, Status: OutcomeProviderError, Error: err.Error()}
	}

	optionA, optionB, err := ParseOptions(raw)
	if err != nil {
		log.Printf("generation: %s: %v", category, err)
		return CategoryOutcome{Category: category, Status: OutcomeParseFailure, Error: err.Error()}
	}

	trend := &model.Trend{
		ID:       uuid.NewString(),
		Category: category,
		OptionA:  optionA,
		OptionB:  optionB,
		Active:   true,
	}
	if err := s.trends.InsertActive(ctx, trend); err != nil {
		log.Printf("generation: %s: insert failed: %v", category, err)
		return CategoryOutcome{Category: category, Status: OutcomeStoreError, Error: err.Error()}
	}

	// Ledger entries are written only after a successful commit; a failed
	// append is logged but does not undo the trend, so the ledger may
	// under-record but never over-records.
	if err := s.history.Append(ctx, category, []string{optionA, optionB}); err != nil {
		log.Printf("generation: %s: ledger append failed: %v", category, err)
	}

	log.Printf("generation: %s: %q vs %q", category, optionA, optionB)
	return CategoryOutcome{Category: category, Status: OutcomeOK, TrendID: trend.ID}
}

// BuildPrompt embeds the category and the recent option texts as negative
// examples. The provider is asked, not forced, to avoid them: a repeated
// phrase is accepted if it comes back.
func BuildPrompt(category string, past []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find two currently-trending, widely-discussed themes in the %q category.\n", category)
	b.WriteString("Each theme label must be 2-4 words, and the two must be clearly different from each other.\n")
	if len(past) > 0 {
		b.WriteString("Do not repeat any of these previously used options:\n")
		for _, p := range past {
			b.WriteString("- ")
			b.WriteString(p)
			b.WriteByte('\n')
		}
	}
	b.WriteString("Respond with exactly two lines and nothing else:\n")
	b.WriteString("OPTION_A: <first theme>\n")
	b.WriteString("OPTION_B: <second theme>\n")
	return b.String()
}

// ParseOptions extracts the two option labels from the provider output with
// a strict line-tag match. Any deviation — a missing tag, wrong case, a
// duplicate tag, extra non-blank content, empty or identical labels — is a
// parse failure and the category is skipped for this run.
func ParseOptions(raw string) (optionA, optionB string, err error) {
	var seenA, seenB bool
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "OPTION_A:"):
			if seenA {
				return "", "", fmt.Errorf("%w: duplicate OPTION_A tag", ErrParseFailure)
			}
			optionA = strings.TrimSpace(strings.TrimPrefix(line, "OPTION_A:"))
			seenA = true
		case strings.HasPrefix(line, "OPTION_B:"):
			if seenB {
				return "", "", fmt.Errorf("%w: duplicate OPTION_B tag", ErrParseFailure)
			}
			optionB = strings.TrimSpace(strings.TrimPrefix(line, "OPTION_B:"))
			seenB = true
		default:
			return "", "", fmt.Errorf("%w: unexpected line %q", ErrParseFailure, line)
		}
	}

	if !seenA || !seenB {
		return "", "", fmt.Errorf("%w: missing OPTION_A or OPTION_B tag", ErrParseFailure)
	}
	if optionA == "" || optionB == "" {
		return "", "", fmt.Errorf("%w: empty option label", ErrParseFailure)
	}
	if strings.EqualFold(optionA, optionB) {
		return "", "", fmt.Errorf("%w: options must be distinct", ErrParseFailure)
	}
	return optionA, optionB, nil
}
