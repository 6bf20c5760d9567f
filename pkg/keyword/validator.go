package keyword

import (
	"context"
	"strings"
	"time"

	"storescan-go/pkg/logger"
)

// VolumeResult is one keyword returned by the volume lookup collaborator.
type VolumeResult struct {
	Keyword     string
	Volume      int
	Competition Competition
}

// VolumeClient is the batched keyword-volume lookup. Implementations accept
// at most ValidatorConfig.BatchSize hint terms per call.
type VolumeClient interface {
	Lookup(ctx context.Context, hints []string) ([]VolumeResult, error)
}

// ValidatorConfig bounds the validation stage.
type ValidatorConfig struct {
	BatchSize     int
	MaxBatchCalls int
	BatchSleep    time.Duration
	VolumeFloor   int

	// PrimaryLocation is the most specific location anchor; estimated
	// entries containing it get a volume boost.
	PrimaryLocation string
}

// MinTargets is the minimum validated-keyword spread per category. When live
// data under-produces a category, the estimation fallback fills the gap.
var MinTargets = map[Category]int{
	CategoryCore:      4,
	CategoryTarget:    5,
	CategorySituation: 4,
}

// estimation heuristics
const (
	estimatedBaseVolume = 200
	locationBoost       = 1.2
)

var estimatedScale = map[Category]float64{
	CategoryCore:      1.0,
	CategoryTarget:    0.7,
	CategorySituation: 0.5,
}

// Validator runs quota-balanced batched volume lookups over the candidate
// list and back-fills under-represented categories with flagged estimates.
type Validator struct {
	client VolumeClient
	config ValidatorConfig
	log    *logger.Logger
}

func NewValidator(client VolumeClient, config ValidatorConfig) *Validator {
	if config.BatchSize <= 0 {
		config.BatchSize = 5
	}
	if config.MaxBatchCalls <= 0 {
		config.MaxBatchCalls = 5
	}
	if config.VolumeFloor <= 0 {
		config.VolumeFloor = 10
	}
	return &Validator{
		client: client,
		config: config,
		log:    logger.GetLogger().WithField("component", "keyword_validator"),
	}
}

// Validate returns live-validated keywords plus estimated back-fill entries.
// Lookup failures are absorbed: the estimation fallback still guarantees a
// minimum category spread.
func (v *Validator) Validate(ctx context.Context, candidates []Candidate) []Validated {
	queue := interleave(candidates)
	validated, matched := v.runBatches(ctx, queue)
	validated = append(validated, v.estimate(candidates, validated, matched)...)
	return validated
}

// runBatches issues up to MaxBatchCalls lookups of BatchSize candidates each
// and maps returned keywords back onto their originating candidates.
func (v *Validator) runBatches(ctx context.Context, queue []Candidate) ([]Validated, map[string]bool) {
	matched := make(map[string]bool, len(queue))
	var validated []Validated

	batches := chunk(queue, v.config.BatchSize)
	if len(batches) > v.config.MaxBatchCalls {
		batches = batches[:v.config.MaxBatchCalls]
	}

	for i, batch := range batches {
		if i > 0 && v.config.BatchSleep > 0 {
			time.Sleep(v.config.BatchSleep)
		}

		hints := make([]string, len(batch))
		for j, candidate := range batch {
			hints[j] = candidate.Text
		}

		results, err := v.client.Lookup(ctx, hints)
		if err != nil {
			v.log.WithError(err).WithField("batch", i+1).Warn("Volume lookup failed, relying on estimation fallback")
			continue
		}

		for _, result := range results {
			if result.Volume < v.config.VolumeFloor {
				continue
			}
			candidate, ok := matchCandidate(result.Keyword, batch, queue)
			category := CategoryRelated
			if ok {
				category = candidate.Category
				matched[candidate.Text] = true
			}
			validated = append(validated, Validated{
				Keyword:       result.Keyword,
				MonthlyVolume: result.Volume,
				Competition:   result.Competition,
				Category:      category,
				Score:         Score(result.Volume, result.Competition, category),
			})
		}
	}

	return validated, matched
}

// estimate synthesizes flagged entries for categories whose live count fell
// below the minimum target, drawing from still-unvalidated candidates in
// generation order. Estimated volume is heuristic: a scaled base, boosted
// when the candidate contains the primary location.
func (v *Validator) estimate(candidates []Candidate, live []Validated, matched map[string]bool) []Validated {
	liveCount := make(map[Category]int, 4)
	for _, entry := range live {
		liveCount[entry.Category]++
	}

	var estimates []Validated
	for _, category := range []Category{CategoryCore, CategoryTarget, CategorySituation} {
		needed := MinTargets[category] - liveCount[category]
		if needed <= 0 {
			continue
		}
		for _, candidate := range candidates {
			if needed == 0 {
				break
			}
			if candidate.Category != category || matched[candidate.Text] {
				continue
			}
			matched[candidate.Text] = true
			needed--

			volume := estimatedBaseVolume * estimatedScale[category]
			if v.config.PrimaryLocation != "" &&
				strings.Contains(stripSpaces(candidate.Text), stripSpaces(v.config.PrimaryLocation)) {
				volume *= locationBoost
			}

			estimates = append(estimates, Validated{
				Keyword:       candidate.Text,
				MonthlyVolume: int(volume),
				Competition:   CompetitionLow,
				Category:      category,
				Score:         Score(int(volume), CompetitionLow, category),
				IsEstimated:   true,
			})
		}
	}
	return estimates
}

// matchCandidate resolves a returned keyword to its originating candidate by
// whitespace-stripped substring containment, preferring the batch that
// produced it.
func matchCandidate(returned string, batch, all []Candidate) (Candidate, bool) {
	compact := stripSpaces(returned)
	for _, pool := range [][]Candidate{batch, all} {
		for _, candidate := range pool {
			cc := stripSpaces(candidate.Text)
			if cc == "" {
				continue
			}
			if strings.Contains(compact, cc) || strings.Contains(cc, compact) {
				return candidate, true
			}
		}
	}
	return Candidate{}, false
}

// interleave orders candidates round-robin across categories so no single
// category starves the batch-call budget.
func interleave(candidates []Candidate) []Candidate {
	buckets := map[Category][]Candidate{}
	for _, candidate := range candidates {
		buckets[candidate.Category] = append(buckets[candidate.Category], candidate)
	}

	order := []Category{CategoryCore, CategoryTarget, CategorySituation, CategoryRelated}
	out := make([]Candidate, 0, len(candidates))
	for len(out) < len(candidates) {
		progressed := false
		for _, category := range order {
			if len(buckets[category]) > 0 {
				out = append(out, buckets[category][0])
				buckets[category] = buckets[category][1:]
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return out
}

func chunk(candidates []Candidate, size int) [][]Candidate {
	var out [][]Candidate
	for start := 0; start < len(candidates); start += size {
		end := start + size
		if end > len(candidates) {
			end = len(candidates)
		}
		out = append(out, candidates[start:end])
	}
	return out
}
