package dice

import (
	"fmt"
	"strconv"
	"strings"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// RollResult is the outcome of rolling a group of dice
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

// Expression is a parsed "XdY+Z" dice expression
type Expression struct {
	Count int
	Sides int
	Bonus int
}

// ParseExpression parses strings such as "3d6", "1d8+2" or "2d4-1"
func ParseExpression(s string) (Expression, error) {
	expr := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	bonus := 0
	if i := strings.IndexAny(expr, "+-"); i >= 0 {
		b, err := strconv.Atoi(expr[i:])
		if err != nil {
			return Expression{}, rpgerr.InvalidArgumentf("invalid dice bonus in %q", s)
		}
		bonus = b
		expr = expr[:i]
	}

	parts := strings.Split(strings.ToLower(expr), "d")
	if len(parts) != 2 {
		return Expression{}, rpgerr.InvalidArgumentf("invalid dice expression %q", s)
	}

	count := 1
	if parts[0] != "" {
		c, err := strconv.Atoi(parts[0])
		if err != nil {
			return Expression{}, rpgerr.InvalidArgumentf("invalid dice count in %q", s)
		}
		count = c
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Expression{}, rpgerr.InvalidArgumentf("invalid dice size in %q", s)
	}

	if err := validate(count, sides); err != nil {
		return Expression{}, err
	}

	return Expression{Count: count, Sides: sides, Bonus: bonus}, nil
}

// RollExpression parses and rolls a dice expression with the given roller
func RollExpression(r Roller, s string) (*RollResult, error) {
	expr, err := ParseExpression(s)
	if err != nil {
		return nil, err
	}
	return r.Roll(expr.Count, expr.Sides, expr.Bonus)
}

func (e Expression) String() string {
	switch {
	case e.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Bonus)
	case e.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Bonus)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("%d %s", r.Total, compact)
}

func validate(count, sides int) error {
	if count < 1 {
		return rpgerr.InvalidArgument("invalid dice count")
	}
	if sides < 1 {
		return rpgerr.InvalidArgument("invalid dice size")
	}
	return nil
}

func newRollResult(count, sides, bonus int, rolls []int) *RollResult {
	raw := 0
	for _, roll := range rolls {
		raw += roll
	}
	return &RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}
}
