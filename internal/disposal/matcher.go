package disposal

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

// Match is the catalogue entry chosen for a term
type Match struct {
	Term         string `json:"term"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
	Exact        bool   `json:"exact"`
}

// NormalizeTerm lower-cases and trims a spoken or typed material name
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchRecords scans every keyword of every record. A keyword equal to term
// wins immediately. Otherwise the last keyword containing term wins, and Term
// is set to that keyword.
func MatchRecords(records []models.DisposalRecord, term string) (Match, bool) {
	var candidate Match
	found := false

	for _, rec := range records {
		for _, kw := range strings.Split(rec.Keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == term {
				return Match{
					Term:         term,
					Instructions: HTMLToText(rec.Body),
					Category:     rec.Category,
					Exact:        true,
				}, true
			}
			if strings.Contains(kw, term) {
				candidate = Match{Term: kw, Category: rec.Category, Instructions: rec.Body}
				found = true
			}
		}
	}

	if !found {
		return Match{}, false
	}
	candidate.Instructions = HTMLToText(candidate.Instructions)
	return candidate, true
}

// RecordSource provides the disposal catalogue
type RecordSource interface {
	Records(ctx context.Context) ([]models.DisposalRecord, error)
}

// Matcher finds disposal instructions for a material
type Matcher struct {
	source RecordSource
	logger *zap.Logger
}

// NewMatcher creates a matcher over source
func NewMatcher(source RecordSource, logger *zap.Logger) *Matcher {
	return &Matcher{source: source, logger: logger}
}

// Find looks up term, which the caller has already passed through
// NormalizeTerm. An empty term never matches.
func (m *Matcher) Find(ctx context.Context, term string) (Match, error) {
	if term == "" {
		return Match{}, outcome.Fail("find disposal", outcome.NoMatch, nil)
	}

	records, err := m.source.Records(ctx)
	if err != nil {
		return Match{}, err
	}

	match, ok := MatchRecords(records, term)
	if !ok {
		m.logger.Info("material not in catalogue", zap.String("term", term))
		return Match{}, outcome.Fail("find disposal", outcome.NoMatch, nil)
	}

	m.logger.Debug("material matched",
		zap.String("term", term),
		zap.String("keyword", match.Term),
		zap.Bool("exact", match.Exact),
	)
	return match, nil
}
