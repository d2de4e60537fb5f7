// Package scoring computes how attractive it is for a clan to join or leave a
// kingdom, and for a kingdom to take a clan in. Every function is a pure
// computation over a realm.World snapshot.
package scoring

import (
	"github.com/rs/zerolog"

	"github.com/freeeve/fealty/pkg/realm"
)

// Reject is returned for pairings that must never happen, such as a ruling
// clan joining another kingdom.
const Reject = -1e8

// Rejection reasons reported in a Breakdown.
const (
	ReasonRulingClan   = "clan rules its kingdom"
	ReasonNoHeroes     = "clan has no commander heroes"
	ReasonEmptyKingdom = "kingdom has no heroes"
	ReasonNotInKingdom = "clan is not in a kingdom"
)

// DiplomacyScorer scores clan and kingdom membership decisions.
type DiplomacyScorer interface {
	Name() string
	ScoreClanJoinsKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64
	ScoreClanLeavesKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64
	ScoreKingdomRecruitsClan(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) float64
}

// Explainer is implemented by scorers that can report the terms behind each
// score. The Breakdown's Score equals what the matching Score method returns.
type Explainer interface {
	ExplainClanJoinsKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown
	ExplainClanLeavesKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown
	ExplainKingdomRecruitsClan(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) Breakdown
}

// Term is one named intermediate value of a score.
type Term struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Breakdown is a score together with the terms it was built from. Rejected
// is non-empty when the score is Reject.
type Breakdown struct {
	Score    float64
	Rejected string
	Terms    []Term
}

func (b *Breakdown) add(name string, v float64) {
	b.Terms = append(b.Terms, Term{Name: name, Value: v})
}

func rejected(reason string) Breakdown {
	return Breakdown{Score: Reject, Rejected: reason}
}

// Term returns the value of the named term.
func (b Breakdown) Term(name string) (float64, bool) {
	for _, t := range b.Terms {
		if t.Name == name {
			return t.Value, true
		}
	}
	return 0, false
}

// MarshalZerologObject lets a breakdown be logged with Object().
func (b Breakdown) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("score", b.Score)
	if b.Rejected != "" {
		e.Str("rejected", b.Rejected)
	}
	for _, t := range b.Terms {
		e.Float64(t.Name, t.Value)
	}
}

var (
	_ DiplomacyScorer = (*DefaultScorer)(nil)
	_ Explainer       = (*DefaultScorer)(nil)
)

// DefaultScorer is the stock DiplomacyScorer. The zero value is usable and
// logs nothing.
type DefaultScorer struct {
	log zerolog.Logger
}

// Option configures a DefaultScorer.
type Option func(*DefaultScorer)

// WithLogger sends a debug-level breakdown of every score to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *DefaultScorer) { s.log = l }
}

// NewDefaultScorer returns a DefaultScorer configured by opts.
func NewDefaultScorer(opts ...Option) *DefaultScorer {
	s := &DefaultScorer{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (*DefaultScorer) Name() string { return "default" }

func (s *DefaultScorer) ScoreClanJoinsKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	return s.ExplainClanJoinsKingdom(w, clan, kingdom).Score
}

func (s *DefaultScorer) ScoreClanLeavesKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) float64 {
	return s.ExplainClanLeavesKingdom(w, clan, kingdom).Score
}

func (s *DefaultScorer) ScoreKingdomRecruitsClan(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) float64 {
	return s.ExplainKingdomRecruitsClan(w, kingdom, clan).Score
}

func (s *DefaultScorer) ExplainClanJoinsKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown {
	b := ExplainJoin(w, clan, kingdom)
	s.trace("join", clan, kingdom, b)
	return b
}

func (s *DefaultScorer) ExplainClanLeavesKingdom(w realm.World, clan *realm.Clan, kingdom *realm.Kingdom) Breakdown {
	b := ExplainLeave(w, clan, kingdom)
	s.trace("leave", clan, kingdom, b)
	return b
}

func (s *DefaultScorer) ExplainKingdomRecruitsClan(w realm.World, kingdom *realm.Kingdom, clan *realm.Clan) Breakdown {
	b := ExplainRecruit(w, kingdom, clan)
	s.trace("recruit", clan, kingdom, b)
	return b
}

func (s *DefaultScorer) trace(kind string, clan *realm.Clan, kingdom *realm.Kingdom, b Breakdown) {
	e := s.log.Debug()
	if !e.Enabled() {
		return
	}
	e = e.Str("kind", kind).Str("clan", string(clan.ID))
	if kingdom != nil {
		e = e.Str("kingdom", string(kingdom.ID))
	}
	e.Object("breakdown", b).Msg("Scored")
}
