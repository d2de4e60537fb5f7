package scoring

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/freeeve/fealty/pkg/realm"
)

// JoinTable scores every clan against every kingdom. Row i, column j holds
// the score for clans[i] joining kingdoms[j].
func JoinTable(sc DiplomacyScorer, w realm.World, clans []*realm.Clan, kingdoms []*realm.Kingdom) *tensor.Dense {
	return scoreTable(clans, kingdoms, func(c *realm.Clan, k *realm.Kingdom) float64 {
		return sc.ScoreClanJoinsKingdom(w, c, k)
	})
}

// LeaveTable is JoinTable for leaving. Cells pairing a clan with a kingdom it
// does not belong to hold Reject.
func LeaveTable(sc DiplomacyScorer, w realm.World, clans []*realm.Clan, kingdoms []*realm.Kingdom) *tensor.Dense {
	return scoreTable(clans, kingdoms, func(c *realm.Clan, k *realm.Kingdom) float64 {
		if c.Kingdom != k {
			return Reject
		}
		return sc.ScoreClanLeavesKingdom(w, c, k)
	})
}

// RecruitTable is JoinTable from the kingdoms' side: row i, column j holds the
// value to kingdoms[j] of recruiting clans[i].
func RecruitTable(sc DiplomacyScorer, w realm.World, clans []*realm.Clan, kingdoms []*realm.Kingdom) *tensor.Dense {
	return scoreTable(clans, kingdoms, func(c *realm.Clan, k *realm.Kingdom) float64 {
		return sc.ScoreKingdomRecruitsClan(w, k, c)
	})
}

// scoreTable returns nil when either axis is empty.
func scoreTable(clans []*realm.Clan, kingdoms []*realm.Kingdom, score func(*realm.Clan, *realm.Kingdom) float64) *tensor.Dense {
	rows, cols := len(clans), len(kingdoms)
	if rows == 0 || cols == 0 {
		return nil
	}
	data := make([]float64, rows*cols)
	for i, c := range clans {
		for j, k := range kingdoms {
			data[i*cols+j] = score(c, k)
		}
	}
	return tensor.New(
		tensor.WithShape(rows, cols),
		tensor.Of(tensor.Float64),
		tensor.WithBacking(data),
	)
}

// Cell returns the score at row, col.
func Cell(table *tensor.Dense, row, col int) (float64, error) {
	v, err := table.At(row, col)
	if err != nil {
		return 0, fmt.Errorf("score table cell (%d, %d): %w", row, col, err)
	}
	return v.(float64), nil
}

// BestKingdom returns the column with the highest score in row, ignoring
// Reject cells. ok is false when every cell is rejected.
func BestKingdom(table *tensor.Dense, row int) (col int, score float64, ok bool) {
	col = -1
	for j := 0; j < table.Shape()[1]; j++ {
		v, err := Cell(table, row, j)
		if err != nil || v <= Reject {
			continue
		}
		if col < 0 || v > score {
			col, score = j, v
		}
	}
	return col, score, col >= 0
}
