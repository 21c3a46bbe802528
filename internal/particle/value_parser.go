// Package particle provides the value syntax and seeded samplers used to lay
// out decorative particle clusters.
//
// Values reuse the emitter config notation:
//   - Fixed value: "1500" → min=1500, max=1500
//   - Range: "[0.7 0.9]" → random value between min and max
//   - Single-value range: "[0.3]" → fixed 0.3
package particle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rand 是采样所需的最小随机源接口，*rand.Rand 满足该接口
// 场景构建时必须传入显式种子的随机源，保证布局可复现
type Rand interface {
	Float64() float64
}

// Range 表示一个区间 [Min, Max]
type Range struct {
	Min float64
	Max float64
}

// Fixed 返回 Min == Max 的区间
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Contains 检查 v 是否落在区间内（包含端点）
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sample 在区间内取随机值
func (r Range) Sample(rng Rand) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}

// String 以配置语法输出区间
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// UnmarshalYAML 支持 `size: "[0.012 0.037]"`、`size: 0.3`、`size: [0.012, 0.037]` 三种写法
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var bounds []float64
		if err := value.Decode(&bounds); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		parts := make([]string, len(bounds))
		for i, b := range bounds {
			parts[i] = strconv.FormatFloat(b, 'g', -1, 64)
		}
		parsed, err := ParseRange("[" + strings.Join(parts, " ") + "]")
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*r = parsed
		return nil
	}

	parsed, err := ParseRange(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML 以配置语法写回区间
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// ParseRange parses a value string in the particle config syntax.
//
// Returns an error for empty strings, malformed numbers, more than two
// range components, or min > max.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range value")
	}

	// Check for range format: "[min max]" or "[value]"
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		rangeStr := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(rangeStr)
		switch len(parts) {
		case 1:
			// 单值格式: "[value]" - 作为固定值处理
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			min, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range min %q: %w", s, err)
			}
			max, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range max %q: %w", s, err)
			}
			if min > max {
				return Range{}, fmt.Errorf("range %q has min > max", s)
			}
			return Range{Min: min, Max: max}, nil
		default:
			return Range{}, fmt.Errorf("range %q must have 1 or 2 values, got %d", s, len(parts))
		}
	}

	// Fixed value format
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// RandomInRange returns a random float64 in the range [min, max).
// When min >= max it returns min.
func RandomInRange(rng Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}
