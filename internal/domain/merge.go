package domain

import (
	"dario.cat/mergo"
)

type MergeStrategy string

const (
	StrategyAll   MergeStrategy = "all"
	StrategyAny   MergeStrategy = "any"
	StrategyFirst MergeStrategy = "first"
)

// MergeConfig describes how a merge node combines its named inputs.
type MergeConfig struct {
	Strategy MergeStrategy `json:"strategy"`
	// SkipMissing treats a skipped upstream input as absent rather than as
	// an error.
	SkipMissing bool `json:"skip_missing,omitempty"`
	// Optional lists input ports the "all" strategy does not require.
	Optional []string `json:"optional,omitempty"`
}

func (c *MergeConfig) IsOptional(port string) bool {
	for _, p := range c.Optional {
		if p == port {
			return true
		}
	}
	return false
}

// MergeValues folds a sequence of values into one. Maps are deep-merged with
// later values overriding earlier ones and slices appended; slices are
// concatenated; anything else resolves to the last value.
func MergeValues(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}

	merged := values[0]
	for _, next := range values[1:] {
		combined, err := mergePair(merged, next)
		if err != nil {
			return nil, err
		}
		merged = combined
	}
	return merged, nil
}

func mergePair(current, next interface{}) (interface{}, error) {
	if current == nil {
		return next, nil
	}
	if next == nil {
		return current, nil
	}

	currentMap, currentIsMap := current.(map[string]interface{})
	nextMap, nextIsMap := next.(map[string]interface{})
	if currentIsMap && nextIsMap {
		out := make(map[string]interface{}, len(currentMap))
		for k, v := range currentMap {
			out[k] = v
		}
		if err := mergo.Merge(&out, nextMap, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
			return nil, err
		}
		return out, nil
	}

	currentSlice, currentIsSlice := current.([]interface{})
	nextSlice, nextIsSlice := next.([]interface{})
	if currentIsSlice && nextIsSlice {
		out := make([]interface{}, 0, len(currentSlice)+len(nextSlice))
		out = append(out, currentSlice...)
		out = append(out, nextSlice...)
		return out, nil
	}

	return next, nil
}
