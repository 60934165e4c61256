package game

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
)

//go:embed plinko_tables.json
var multiplierTablesJSON []byte

var multiplierTables = loadMultiplierTables()

// loadMultiplierTables parses the embedded payout tables and enforces the
// one structural invariant buckets depend on: a table for n rows has
// exactly n+1 entries. A violation here is a build defect, so panic.
func loadMultiplierTables() map[Risk]map[int][]float64 {
	raw := map[string]map[string][]float64{}
	if err := json.Unmarshal(multiplierTablesJSON, &raw); err != nil {
		panic(fmt.Sprintf("failed to parse multiplier tables: %v", err))
	}

	result := make(map[Risk]map[int][]float64, len(raw))
	for riskKey, byRows := range raw {
		risk, err := ParseRisk(riskKey)
		if err != nil {
			panic(fmt.Sprintf("multiplier tables: %v", err))
		}

		result[risk] = make(map[int][]float64, len(byRows))
		for rowsKey, multipliers := range byRows {
			rows, err := strconv.Atoi(rowsKey)
			if err != nil {
				panic(fmt.Sprintf("invalid row key %q for risk %q: %v", rowsKey, riskKey, err))
			}
			if len(multipliers) != rows+1 {
				panic(fmt.Sprintf("multiplier table %s/%d: expected %d entries, got %d",
					riskKey, rows, rows+1, len(multipliers)))
			}

			copied := make([]float64, len(multipliers))
			copy(copied, multipliers)
			result[risk][rows] = copied
		}
	}

	return result
}

// MultiplierTable returns the ordered multiplier sequence for the given
// board configuration, one entry per bucket (index = final bucket index).
func MultiplierTable(difficulty Difficulty, risk Risk) ([]float64, error) {
	byRows, ok := multiplierTables[risk]
	if !ok {
		return nil, fmt.Errorf("no multiplier tables for risk %q", risk)
	}
	table, ok := byRows[difficulty.Rows()]
	if !ok {
		return nil, fmt.Errorf("no multiplier table for risk %q with %d rows", risk, difficulty.Rows())
	}
	return table, nil
}

// MultiplierFor resolves the payout multiplier for a landed bucket.
func MultiplierFor(difficulty Difficulty, risk Risk, bucket int) (float64, error) {
	table, err := MultiplierTable(difficulty, risk)
	if err != nil {
		return 0, err
	}
	if bucket < 0 || bucket >= len(table) {
		return 0, fmt.Errorf("bucket %d out of range for %d-row board", bucket, difficulty.Rows())
	}
	return table[bucket], nil
}
