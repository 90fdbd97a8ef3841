package app

import (
	"context"
	"fmt"

	"fittrack/internal/domain"
	"fittrack/internal/fitness"
)

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	store *Store
}

// NewChartsService creates a ChartsService over store.
func NewChartsService(store *Store) *ChartsService {
	return &ChartsService{store: store}
}

// WeightChart is the weight trend with the goal lines, all in Unit.
type WeightChart struct {
	Unit           string               `json:"unit"`
	Points         []fitness.TrendPoint `json:"points"`
	StartingWeight *float64             `json:"startingWeight"`
	TargetWeight   *float64             `json:"targetWeight"`
}

// WeightTrend returns every logged weight with its 7-entry trailing average,
// converted to the requested unit.
func (s *ChartsService) WeightTrend(ctx context.Context, unit string) (WeightChart, error) {
	if err := domain.ValidateUnit(unit); err != nil {
		return WeightChart{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return WeightChart{}, err
	}

	conv := func(kg float64) float64 {
		return domain.ConvertWeight(kg, domain.UnitKG, unit)
	}
	points := fitness.TrendIn(data.Entries, conv)

	chart := WeightChart{Unit: unit, Points: points}
	if p := data.Profile; p != nil {
		start, target := conv(p.StartingWeight), conv(p.TargetWeight)
		chart.StartingWeight = &start
		chart.TargetWeight = &target
	}
	return chart, nil
}
