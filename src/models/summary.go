package models

import (
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// CategorySummary aggregates the parsable numeric values logged under one
// category. Cells whose value column does not parse as a number are skipped.
type CategorySummary struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

func Summarize(schema Schema, rows []Record) []CategorySummary {
	samples := make(map[string][]float64)

	for _, row := range rows {
		raw := strings.TrimSpace(row.Cell(schema, ValueColumn))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		category := row.Cell(schema, CategoryColumn)
		samples[category] = append(samples[category], value)
	}

	out := make([]CategorySummary, 0, len(samples))
	for category, values := range samples {
		mean, _ := stats.Mean(values)
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)

		out = append(out, CategorySummary{
			Category: category,
			Count:    len(values),
			Mean:     mean,
			Min:      min,
			Max:      max,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})

	return out
}
