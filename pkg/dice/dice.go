// Copyright (c) 2026 Lorevault. All rights reserved.

/*
Package dice implements polyhedral dice rolls for tabletop play.

It models the standard seven-die set (d4 through d100). Results are uniform
over [1, sides] with an additive modifier carried alongside the raw roll, so
callers can display "rolled 14 + 2" rather than a single opaque total.
*/
package dice

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// # Dice Kinds

// Kind identifies one die from the standard polyhedral set.
type Kind string

const (
	D4   Kind = "d4"
	D6   Kind = "d6"
	D8   Kind = "d8"
	D10  Kind = "d10"
	D12  Kind = "d12"
	D20  Kind = "d20"
	D100 Kind = "d100"
)

// Kinds lists the full set in ascending side count.
func Kinds() []Kind {
	return []Kind{D4, D6, D8, D10, D12, D20, D100}
}

// Sides returns the face count of the die, or an error for unknown kinds.
func (k Kind) Sides() (int, error) {
	raw, ok := strings.CutPrefix(string(k), "d")
	if !ok {
		return 0, fmt.Errorf("dice: unknown die kind %q", k)
	}

	sides, err := strconv.Atoi(raw)
	if err != nil || sides < 2 {
		return 0, fmt.Errorf("dice: unknown die kind %q", k)
	}

	return sides, nil
}

// # Rolling

// Roll is the outcome of throwing a single die.
type Roll struct {
	Kind     Kind `json:"type"`
	Result   int  `json:"result"`
	Modifier int  `json:"modifier"`
}

// Total returns the raw result plus the modifier.
func (r Roll) Total() int {
	return r.Result + r.Modifier
}

// Throw rolls one die of the given kind with an additive modifier.
func Throw(kind Kind, modifier int) (Roll, error) {
	sides, err := kind.Sides()
	if err != nil {
		return Roll{}, err
	}

	return Roll{
		Kind:     kind,
		Result:   rand.IntN(sides) + 1,
		Modifier: modifier,
	}, nil
}
