package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/freeeve/fealty/internal/config"
	"github.com/freeeve/fealty/pkg/realm"
	"github.com/freeeve/fealty/pkg/scoring"
)

type result struct {
	Kind     string          `json:"kind"`
	Clan     realm.FactionID `json:"clan"`
	Kingdom  realm.FactionID `json:"kingdom"`
	Score    float64         `json:"score"`
	Rejected string          `json:"rejected,omitempty"`
	Terms    []scoring.Term  `json:"terms,omitempty"`
}

// tableRow holds one clan's join scores in kingdom order.
type tableRow struct {
	Clan   realm.FactionID `json:"clan"`
	Scores []float64       `json:"scores"`
	Best   realm.FactionID `json:"best,omitempty"`
}

type report struct {
	Mode     string            `json:"mode"`
	Results  []result          `json:"results,omitempty"`
	Kingdoms []realm.FactionID `json:"kingdoms,omitempty"`
	Table    []tableRow        `json:"table,omitempty"`
}

func evaluate(sc scoring.DiplomacyScorer, s *realm.Snapshot, opts *options) (*report, error) {
	rep := &report{Mode: opts.mode}
	switch opts.mode {
	case config.ModeJoin:
		clan, err := s.Clan(realm.FactionID(opts.clan))
		if err != nil {
			return nil, err
		}
		kingdoms, err := kingdomsFor(s, opts.kingdom)
		if err != nil {
			return nil, err
		}
		for _, k := range kingdoms {
			rep.add(opts.mode, clan, k, explainJoin(sc, s, clan, k), opts.explain)
		}
	case config.ModeLeave:
		clan, err := s.Clan(realm.FactionID(opts.clan))
		if err != nil {
			return nil, err
		}
		k := clan.Kingdom
		if opts.kingdom != "" {
			if k, err = s.Kingdom(realm.FactionID(opts.kingdom)); err != nil {
				return nil, err
			}
		}
		if k == nil {
			return nil, fmt.Errorf("clan %q is not in a kingdom", clan.ID)
		}
		rep.add(opts.mode, clan, k, explainLeave(sc, s, clan, k), opts.explain)
	case config.ModeRecruit:
		k, err := s.Kingdom(realm.FactionID(opts.kingdom))
		if err != nil {
			return nil, err
		}
		clans, err := clansFor(s, k, opts.clan)
		if err != nil {
			return nil, err
		}
		for _, c := range clans {
			rep.add(opts.mode, c, k, explainRecruit(sc, s, k, c), opts.explain)
		}
	case config.ModeTable:
		buildTable(rep, sc, s)
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
	if opts.mode != config.ModeTable && len(rep.Results) == 0 {
		return nil, errors.New("nothing to score")
	}
	return rep, nil
}

func kingdomsFor(s *realm.Snapshot, id string) ([]*realm.Kingdom, error) {
	if id == "" {
		return s.Kingdoms(), nil
	}
	k, err := s.Kingdom(realm.FactionID(id))
	if err != nil {
		return nil, err
	}
	return []*realm.Kingdom{k}, nil
}

// clansFor returns the named clan, or every clan outside k.
func clansFor(s *realm.Snapshot, k *realm.Kingdom, id string) ([]*realm.Clan, error) {
	if id != "" {
		c, err := s.Clan(realm.FactionID(id))
		if err != nil {
			return nil, err
		}
		return []*realm.Clan{c}, nil
	}
	var clans []*realm.Clan
	for _, c := range s.Clans() {
		if c.Kingdom != k {
			clans = append(clans, c)
		}
	}
	return clans, nil
}

// Scorers that are not Explainers report a bare score with no terms.

func explainJoin(sc scoring.DiplomacyScorer, w realm.World, clan *realm.Clan, k *realm.Kingdom) scoring.Breakdown {
	if ex, ok := sc.(scoring.Explainer); ok {
		return ex.ExplainClanJoinsKingdom(w, clan, k)
	}
	return scoring.Breakdown{Score: sc.ScoreClanJoinsKingdom(w, clan, k)}
}

func explainLeave(sc scoring.DiplomacyScorer, w realm.World, clan *realm.Clan, k *realm.Kingdom) scoring.Breakdown {
	if ex, ok := sc.(scoring.Explainer); ok {
		return ex.ExplainClanLeavesKingdom(w, clan, k)
	}
	return scoring.Breakdown{Score: sc.ScoreClanLeavesKingdom(w, clan, k)}
}

func explainRecruit(sc scoring.DiplomacyScorer, w realm.World, k *realm.Kingdom, clan *realm.Clan) scoring.Breakdown {
	if ex, ok := sc.(scoring.Explainer); ok {
		return ex.ExplainKingdomRecruitsClan(w, k, clan)
	}
	return scoring.Breakdown{Score: sc.ScoreKingdomRecruitsClan(w, k, clan)}
}

func (r *report) add(kind string, clan *realm.Clan, k *realm.Kingdom, b scoring.Breakdown, explain bool) {
	res := result{Kind: kind, Clan: clan.ID, Kingdom: k.ID, Score: b.Score, Rejected: b.Rejected}
	if explain {
		res.Terms = b.Terms
	}
	r.Results = append(r.Results, res)
}

func buildTable(rep *report, sc scoring.DiplomacyScorer, s *realm.Snapshot) {
	clans, kingdoms := s.Clans(), s.Kingdoms()
	for _, k := range kingdoms {
		rep.Kingdoms = append(rep.Kingdoms, k.ID)
	}
	table := scoring.JoinTable(sc, s, clans, kingdoms)
	if table == nil {
		return
	}
	for i, c := range clans {
		row := tableRow{Clan: c.ID, Scores: make([]float64, len(kingdoms))}
		for j := range kingdoms {
			v, err := scoring.Cell(table, i, j)
			if err != nil {
				v = scoring.Reject
			}
			row.Scores[j] = v
		}
		if col, _, ok := scoring.BestKingdom(table, i); ok {
			row.Best = kingdoms[col].ID
		}
		rep.Table = append(rep.Table, row)
	}
}

func (r *report) writeJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *report) writeText(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if r.Mode == config.ModeTable {
		fmt.Fprintf(tw, "clan\t%s\tbest\n", strings.Join(factionStrings(r.Kingdoms), "\t"))
		for _, row := range r.Table {
			cells := make([]string, len(row.Scores))
			for j, v := range row.Scores {
				if v <= scoring.Reject {
					cells[j] = "-"
				} else {
					cells[j] = formatScore(v)
				}
			}
			best := string(row.Best)
			if best == "" {
				best = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Clan, strings.Join(cells, "\t"), best)
		}
		return tw.Flush()
	}

	fmt.Fprintln(tw, "kind\tclan\tkingdom\tscore")
	for _, res := range r.Results {
		score := formatScore(res.Score)
		if res.Rejected != "" {
			score = "rejected (" + res.Rejected + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Kind, res.Clan, res.Kingdom, score)
		for _, t := range res.Terms {
			fmt.Fprintf(tw, "\t\t  %s\t%s\n", t.Name, formatScore(t.Value))
		}
	}
	return tw.Flush()
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func factionStrings(ids []realm.FactionID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
