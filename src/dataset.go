package mambo

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Range is a half-open interval [From, To) of dataset indices.
type Range struct {
	From int
	To   int
}

func (r Range) Size() int { return r.To - r.From }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.From, r.To) }

// Sample is one labeled observation.
type Sample struct {
	Features Vec
	Label    float64
}

// Dataset is a read-only indexed collection of samples. Workers address it
// by ranges; the master never ships the data itself during training.
type Dataset []Sample

func (d Dataset) Len() int { return len(d) }

// Slice returns the samples in r. The result aliases the dataset.
func (d Dataset) Slice(r Range) Dataset {
	return d[r.From:r.To]
}

// LoadDatasetCSV reads a dataset where each row is "label,f1,...,fn".
// Rows with a NaN feature fail the load.
func LoadDatasetCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	data := make(Dataset, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("dataset %s row %d: need a label and at least one feature", path, i)
		}
		label, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: bad label: %w", path, i, err)
		}
		features := make([]float64, len(row)-1)
		for j, cell := range row[1:] {
			x, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset %s row %d col %d: %w", path, i, j+1, err)
			}
			features[j] = x
		}
		vec, err := NewVec(features)
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", path, i, err)
		}
		data = append(data, Sample{Features: vec, Label: label})
	}
	return data, nil
}
