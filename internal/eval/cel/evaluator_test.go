package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	e := NewEvaluator()

	got, err := e.Evaluate(context.Background(), "item + 1", map[string]interface{}{"item": 2, "index": 0})
	require.NoError(t, err)
	assert.EqualValues(t, 3, got)

	_, err = e.Evaluate(context.Background(), "item +", map[string]interface{}{"item": 2, "index": 0})
	require.Error(t, err)
}

func TestPredicate(t *testing.T) {
	e := NewEvaluator()

	tests := []struct {
		name  string
		expr  string
		item  interface{}
		index int
		want  bool
	}{
		{"integer comparison", "item > 2", 3, 0, true},
		{"integer comparison false", "item > 2", 1, 0, false},
		{"field access", "item.score >= 0.5", map[string]interface{}{"score": 0.75}, 0, true},
		{"string function", "item.name.startsWith('a')", map[string]interface{}{"name": "ann"}, 0, true},
		{"index", "index == 1", "x", 1, true},
		{"non boolean result", "item", "x", 0, false},
		{"runtime error", "item.missing == 1", map[string]interface{}{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := e.Predicate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pred(tt.item, tt.index, nil))
		})
	}
}

func TestPredicateCompileError(t *testing.T) {
	_, err := NewEvaluator().Predicate("item >")
	require.Error(t, err)
}

func TestMapper(t *testing.T) {
	e := NewEvaluator()

	double, err := e.Mapper("item * 2")
	require.NoError(t, err)
	assert.EqualValues(t, 8, double(4, 0, nil))

	field, err := e.Mapper("item.name")
	require.NoError(t, err)
	assert.Equal(t, "ann", field(map[string]interface{}{"name": "ann"}, 0, nil))
	assert.Nil(t, field(map[string]interface{}{}, 0, nil))
}

func TestValidateExpressionAndCache(t *testing.T) {
	e := NewEvaluator()

	require.NoError(t, e.ValidateExpression("item == 'a'"))
	require.Error(t, e.ValidateExpression("item =="))

	_, err := e.Predicate("item == 'a'")
	require.NoError(t, err)
	assert.Len(t, e.cache, 1)

	e.ClearCache()
	assert.Empty(t, e.cache)
}
