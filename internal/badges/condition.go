package badges

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

type Op string

const (
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpEQ  Op = "=="
	OpGT  Op = ">"
	OpLT  Op = "<"
)

// Condition is a single stat-key requirement. BoolEq and Compare are the only
// implementations.
type Condition interface {
	StatKey() string
	holds(s Stats) bool
}

// BoolEq holds when the boolean stat Key equals Want.
type BoolEq struct {
	Key  string
	Want bool
}

func (c BoolEq) StatKey() string { return c.Key }

func (c BoolEq) holds(s Stats) bool {
	v, ok := s.Bools[c.Key]
	return ok && v == c.Want
}

// Compare holds when the numeric stat Key compared with Threshold by Op is true.
type Compare struct {
	Key       string
	Op        Op
	Threshold int
}

func (c Compare) StatKey() string { return c.Key }

func (c Compare) holds(s Stats) bool {
	v, ok := s.Ints[c.Key]
	if !ok {
		return false
	}
	switch c.Op {
	case OpGTE:
		return v >= c.Threshold
	case OpLTE:
		return v <= c.Threshold
	case OpEQ:
		return v == c.Threshold
	case OpGT:
		return v > c.Threshold
	case OpLT:
		return v < c.Threshold
	}
	return false
}

var comparisonRe = regexp.MustCompile(`^\s*(>=|<=|==|>|<)\s*(-?\d+)\s*$`)

// ParseConditions compiles a condition object such as
//
//	{"missions_completed": ">= 5", "has_ongoing_missions": true}
//
// into conditions ordered by stat key. A JSON string holding such an object is
// accepted too. Every failure wraps ErrConditionParse.
func ParseConditions(raw []byte) ([]Condition, error) {
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", errorvalues.ErrConditionParse, err)
	}
	if s, ok := decoded.(string); ok {
		if err := sonic.UnmarshalString(s, &decoded); err != nil {
			return nil, fmt.Errorf("%w: %w", errorvalues.ErrConditionParse, err)
		}
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: condition must be an object, got %T", errorvalues.ErrConditionParse, decoded)
	}

	conds := make([]Condition, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		switch v := fields[key].(type) {
		case bool:
			conds = append(conds, BoolEq{Key: key, Want: v})
		case string:
			c, err := parseComparison(key, v)
			if err != nil {
				return nil, err
			}
			conds = append(conds, c)
		default:
			return nil, fmt.Errorf("%w: %q has unsupported value %v", errorvalues.ErrConditionParse, key, v)
		}
	}
	return conds, nil
}

func parseComparison(key, expr string) (Compare, error) {
	m := comparisonRe.FindStringSubmatch(expr)
	if m == nil {
		return Compare{}, fmt.Errorf("%w: %q has malformed comparison %q", errorvalues.ErrConditionParse, key, expr)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Compare{}, fmt.Errorf("%w: %q threshold: %w", errorvalues.ErrConditionParse, key, err)
	}
	return Compare{Key: key, Op: Op(m[1]), Threshold: n}, nil
}

// Rule is a compiled badge definition. A rule with a non-nil Err never matches.
type Rule struct {
	Badge      entity.BadgeDefinition
	Conditions []Condition
	Err        error
}

func Compile(def entity.BadgeDefinition) Rule {
	conds, err := ParseConditions(def.Condition)
	return Rule{Badge: def, Conditions: conds, Err: err}
}

// Satisfied reports whether every condition holds against s.
func (r Rule) Satisfied(s Stats) bool {
	if r.Err != nil {
		return false
	}
	for _, c := range r.Conditions {
		if !c.holds(s) {
			return false
		}
	}
	return true
}
