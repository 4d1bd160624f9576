// Copyright (c) 2026 Lorevault. All rights reserved.

package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorevault/lorevault/pkg/dice"
)

/*
TestKind_Sides verifies the face counts of the standard set.
*/
func TestKind_Sides(t *testing.T) {
	expected := map[dice.Kind]int{
		dice.D4: 4, dice.D6: 6, dice.D8: 8, dice.D10: 10,
		dice.D12: 12, dice.D20: 20, dice.D100: 100,
	}

	for _, kind := range dice.Kinds() {
		sides, err := kind.Sides()
		require.NoError(t, err)
		assert.Equal(t, expected[kind], sides)
	}

	_, err := dice.Kind("coin").Sides()
	assert.Error(t, err)
}

/*
TestThrow_Bounds checks that results stay within [1, sides] and the modifier
only affects the total.
*/
func TestThrow_Bounds(t *testing.T) {
	for range 200 {
		roll, err := dice.Throw(dice.D20, 3)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, roll.Result, 1)
		assert.LessOrEqual(t, roll.Result, 20)
		assert.Equal(t, roll.Result+3, roll.Total())
	}
}

/*
TestThrow_UnknownKind rejects dice outside the standard naming scheme.
*/
func TestThrow_UnknownKind(t *testing.T) {
	_, err := dice.Throw(dice.Kind("d1"), 0)
	assert.Error(t, err)

	_, err = dice.Throw(dice.Kind("twenty"), 0)
	assert.Error(t, err)
}
