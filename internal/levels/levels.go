package levels

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNegativeXP = errors.New("xp must not be negative")
	ErrEmptyTable = errors.New("level table is empty")
)

type Tier struct {
	Name        string `json:"name" toml:"name"`
	MinXP       int    `json:"minXp" toml:"min_xp"`
	BorderColor string `json:"borderColor" toml:"border_color"`
	ImageURL    string `json:"imageUrl" toml:"image_url"`
}

// Resolution describes where an xp amount sits in the table.
// Level is 1-based.
type Resolution struct {
	Level           int   `json:"level"`
	Current         Tier  `json:"currentLevel"`
	Next            *Tier `json:"nextLevel"`
	XPToNext        int   `json:"xpToNextLevel"`
	ProgressPercent int   `json:"progressPercent"`
}

func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Ratinho de Academia", MinXP: 0, BorderColor: "#9E9E9E", ImageURL: "https://i.imgur.com/qGk3b2M.png"},
		{Name: "Rato de Academia", MinXP: 200, BorderColor: "#FFFFFF", ImageURL: "https://i.imgur.com/nN0j5vL.png"},
		{Name: "Rato Marombeiro", MinXP: 500, BorderColor: "#4CAF50", ImageURL: "https://i.imgur.com/u8412J4.png"},
		{Name: "Gorila de Academia", MinXP: 1000, BorderColor: "#2196F3", ImageURL: "https://i.imgur.com/x5S2b1L.png"},
		{Name: "Monstro da Jaula", MinXP: 2000, BorderColor: "#9C27B0", ImageURL: "https://res.cloudinary.com/djxml4nsx/image/upload/v1750468704/gymrats_feed_posts/nvxynlzjxtctihjudrsh.png"},
		{Name: "Lenda do Ginásio", MinXP: 5000, BorderColor: "#FFD700", ImageURL: "https://i.imgur.com/sT8s3cK.png"},
	}
}

type Table struct {
	tiers []Tier
}

// NewTable validates that thresholds start at zero and strictly increase.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyTable
	}
	if tiers[0].MinXP != 0 {
		return nil, fmt.Errorf("first tier %q must start at 0 xp, got %d", tiers[0].Name, tiers[0].MinXP)
	}
	for i, tier := range tiers {
		if tier.Name == "" {
			return nil, fmt.Errorf("tier %d has no name", i)
		}
		if i > 0 && tier.MinXP <= tiers[i-1].MinXP {
			return nil, fmt.Errorf("tier %q: min xp %d not above previous %d", tier.Name, tier.MinXP, tiers[i-1].MinXP)
		}
	}

	return &Table{
		tiers: append([]Tier(nil), tiers...),
	}, nil
}

func (t *Table) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}

func (t *Table) Resolve(xp int) (Resolution, error) {
	if xp < 0 {
		return Resolution{}, ErrNegativeXP
	}

	// first tier above xp; the one before it is current
	idx := sort.Search(len(t.tiers), func(i int) bool {
		return t.tiers[i].MinXP > xp
	}) - 1

	res := Resolution{
		Level:           idx + 1,
		Current:         t.tiers[idx],
		ProgressPercent: 100,
	}
	if idx+1 < len(t.tiers) {
		next := t.tiers[idx+1]
		res.Next = &next
		res.XPToNext = next.MinXP - xp
		span := next.MinXP - res.Current.MinXP
		res.ProgressPercent = (xp - res.Current.MinXP) * 100 / span
	}

	return res, nil
}
