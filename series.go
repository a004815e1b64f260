// FILE: lixenwraith/cliconfig/series.go
package cliconfig

import (
	"fmt"
	"sort"
)

// SeriesKey is the reserved top-level key declaring an experiment series.
const SeriesKey = "__series__"

// ExpandSeries removes the series key from raw and returns one mapping per
// combination of the candidate lists, last key varying fastest. Keys follow
// order first, then the remaining series keys sorted. Without a series the
// result is raw itself.
func ExpandSeries(raw map[string]any, order []string) ([]map[string]any, error) {
	value, ok := raw[SeriesKey]
	if !ok {
		return []map[string]any{raw}, nil
	}

	series, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping, got %T", ErrInvalidSeries, SeriesKey, value)
	}

	base := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != SeriesKey {
			base[k] = v
		}
	}

	keys := seriesKeys(series, order)
	candidates := make([][]any, len(keys))
	total := 1
	for i, key := range keys {
		list, err := toSlice(series[key])
		if _, isString := series[key].(string); err != nil || isString {
			return nil, fmt.Errorf("%w: values of %q must be a list, got %T", ErrInvalidSeries, key, series[key])
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: values of %q must not be empty", ErrInvalidSeries, key)
		}
		candidates[i] = list
		total *= len(list)
	}

	results := make([]map[string]any, 0, total)
	idx := make([]int, len(keys))
	for n := 0; n < total; n++ {
		combo := make(map[string]any, len(base)+len(keys))
		for k, v := range base {
			combo[k] = v
		}
		for i, key := range keys {
			combo[key] = candidates[i][idx[i]]
		}
		results = append(results, combo)

		// Advance the odometer, rightmost position first
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(candidates[i]) {
				break
			}
			idx[i] = 0
		}
	}

	return results, nil
}

func seriesKeys(series map[string]any, order []string) []string {
	keys := make([]string, 0, len(series))
	used := make(map[string]bool, len(series))
	for _, name := range order {
		if _, ok := series[name]; ok && !used[name] {
			keys = append(keys, name)
			used[name] = true
		}
	}

	var rest []string
	for k := range series {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
