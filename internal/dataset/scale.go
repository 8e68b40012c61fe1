package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ScaleInputs linearly maps all input values from their current overall
// range onto [newMin, newMax].
//
// When every input value is identical the values are set to newMin.
func (d *TrainingData) ScaleInputs(newMin, newMax float64) error {
	return scaleArena(d.inputs, newMin, newMax)
}

// ScaleOutputs linearly maps all output values onto [newMin, newMax].
func (d *TrainingData) ScaleOutputs(newMin, newMax float64) error {
	return scaleArena(d.outputs, newMin, newMax)
}

// Scale applies ScaleInputs and ScaleOutputs with the same range.
func (d *TrainingData) Scale(newMin, newMax float64) error {
	if err := d.ScaleInputs(newMin, newMax); err != nil {
		return err
	}
	return d.ScaleOutputs(newMin, newMax)
}

func scaleArena(arena []float64, newMin, newMax float64) error {
	if !(newMin < newMax) {
		return fmt.Errorf("invalid scale range [%v, %v]", newMin, newMax)
	}
	if len(arena) == 0 {
		return nil
	}

	oldMin, oldMax := floats.Min(arena), floats.Max(arena)
	if oldMin == oldMax {
		for i := range arena {
			arena[i] = newMin
		}
		return nil
	}

	factor := (newMax - newMin) / (oldMax - oldMin)
	floats.AddConst(-oldMin, arena)
	floats.Scale(factor, arena)
	floats.AddConst(newMin, arena)
	return nil
}

// ColumnStats holds the per-column mean and standard deviation of the
// input vectors.
type ColumnStats struct {
	Mean   []float64
	StdDev []float64
}

// InputStats computes per-column statistics of the input vectors.
func (d *TrainingData) InputStats() (ColumnStats, error) {
	n := d.Len()
	if n == 0 {
		return ColumnStats{}, ErrEmptyDataset
	}

	stats := ColumnStats{
		Mean:   make([]float64, d.numInput),
		StdDev: make([]float64, d.numInput),
	}
	column := make([]float64, n)
	for j := 0; j < d.numInput; j++ {
		for i := 0; i < n; i++ {
			column[i] = d.inputs[i*d.numInput+j]
		}
		stats.Mean[j], stats.StdDev[j] = stat.PopMeanStdDev(column, nil)
	}
	return stats, nil
}

// Standardize rescales every input column to zero mean and unit standard
// deviation and returns the statistics used, so the same transform can be
// applied to held-out data with ApplyStats.
func (d *TrainingData) Standardize() (ColumnStats, error) {
	stats, err := d.InputStats()
	if err != nil {
		return ColumnStats{}, err
	}
	if err := d.ApplyStats(stats); err != nil {
		return ColumnStats{}, err
	}
	return stats, nil
}

// ApplyStats standardizes the inputs with previously computed statistics.
//
// Columns with zero standard deviation are only centred.
func (d *TrainingData) ApplyStats(stats ColumnStats) error {
	if len(stats.Mean) != d.numInput || len(stats.StdDev) != d.numInput {
		return fmt.Errorf("%w: statistics cover %d columns, data set has %d",
			ErrIncompatibleData, len(stats.Mean), d.numInput)
	}

	for i := 0; i < d.Len(); i++ {
		row := d.Input(i)
		for j := range row {
			row[j] -= stats.Mean[j]
			if sd := stats.StdDev[j]; sd > 0 {
				row[j] /= sd
			}
		}
	}
	return nil
}
