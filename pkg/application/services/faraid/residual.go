package faraid

import (
	"math/big"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// ResidualDistributor hands the remainder of the base number to the residuary heirs
type ResidualDistributor struct{}

// NewResidualDistributor creates a new residual distributor
func NewResidualDistributor() *ResidualDistributor {
	return &ResidualDistributor{}
}

// Distribute allocates base - assigned shares to the residuary claimants,
// weighted 2 per male head and 1 per female head.
func (rd *ResidualDistributor) Distribute(st *allocation) error {
	claimants := make([]entities.FurudhItem, 0, 2)
	for _, item := range st.items {
		if item.IsResiduary() {
			claimants = append(claimants, item)
		}
	}

	remainder := st.remainder()
	if len(claimants) == 0 {
		if remainder.Sign() > 0 {
			st.notef("Residue: %s left without a residuary heir", remainder.RatString())
		}
		return nil
	}

	if remainder.Sign() <= 0 {
		for _, c := range claimants {
			st.shares.Add(c.Category, new(big.Rat))
		}
		st.notef("Residue: nothing remains for the residuary heirs")
		return nil
	}

	r, whole := ratToInt(remainder)
	if !whole {
		return entities.NewInconsistencyError("residue %s is not a whole number of shares", remainder.RatString())
	}

	var totalWeight int64
	for _, c := range claimants {
		totalWeight += c.Units()
	}
	if totalWeight == 0 {
		return entities.NewInconsistencyError("residuary group has zero weight but %d shares remain", r)
	}

	if len(claimants) == 1 {
		st.shares.Add(claimants[0].Category, big.NewRat(r, 1))
		st.notef("Residue: %d to %s", r, claimants[0].Category)
		return nil
	}

	st.splitAmong("Residue", r, claimants, weightUnits)
	st.notef("Residue: split 2:1 between %d residuary groups", len(claimants))
	return nil
}
