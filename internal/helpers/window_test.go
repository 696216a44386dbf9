package helpers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterBefore(t *testing.T) {
	abc := seq("a", "b", "c")

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"after 1", After(abc, 1), seq("b", "c")},
		{"after 0", After(abc, 0), seq("a", "b", "c")},
		{"after beyond end", After(abc, 10), seq()},
		{"after negative counts from end", After(abc, -1), seq("c")},
		{"after nil", After(nil, 1), ""},
		{"after text", After("hello", 2), "llo"},
		{"before 2", Before(abc, 2), seq("a")},
		{"before 0 keeps all", Before(abc, 0), seq("a", "b", "c")},
		{"before beyond length", Before(abc, 10), seq()},
		{"before nil", Before(nil, 1), ""},
		{"before text", Before("hello", 2), "hel"},
		{"before numeric string", Before(abc, "1"), seq("a", "b")},
		{"before omitted n keeps all", Before(abc, nil), seq("a", "b", "c")},
		{"after huge offset", After(abc, 1e19), seq()},
		{"after huge negative offset", After(abc, -1e19), seq("a", "b", "c")},
		{"before huge offset", Before(abc, 1e19), seq()},
		{"before huge negative n keeps all", Before(abc, -1e19), seq("a", "b", "c")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAfterBeforePartition(t *testing.T) {
	s := seq("a", "b", "c", "d", "e")
	for n := 0; n <= len(s); n++ {
		head := Before(s, len(s)-n).([]interface{})
		tail := After(s, n).([]interface{})
		assert.Equal(t, s, append(head, tail...), "n=%d", n)
	}
}

func TestWindowDoesNotMutateInput(t *testing.T) {
	s := seq("a", "b", "c")
	out := After(s, 1).([]interface{})
	out[0] = "z"
	assert.Equal(t, seq("a", "b", "c"), s)
}

func TestFirstLast(t *testing.T) {
	letters := seq("a", "b", "c", "d", "e")

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"first two", First(letters, 2), seq("a", "b")},
		{"first without n", First(letters, nil), "a"},
		{"first of text", First("hello", 2), "he"},
		{"first char of text", First("hello", nil), "h"},
		{"first beyond length", First(letters, 10), letters},
		{"first zero", First(letters, 0), seq()},
		{"first negative drops from end", First(letters, -2), seq("a", "b", "c")},
		{"first numeric string", First(letters, "3"), seq("a", "b", "c")},
		{"first huge n", First(letters, 1e19), letters},
		{"first huge negative n", First(letters, -1e19), seq()},
		{"last huge n", Last(letters, 1e19), letters},
		{"first of empty", First(seq(), nil), nil},
		{"first of scalar", First(42, 2), seq()},
		{"first of nil", First(nil, 2), seq()},
		{"last two", Last(letters, 2), seq("d", "e")},
		{"last without n", Last(letters, nil), "e"},
		{"last of text", Last("hello", 3), "llo"},
		{"last zero", Last(letters, 0), seq()},
		{"last beyond length", Last(letters, 10), letters},
		{"last negative drops from start", Last(letters, -2), seq("c", "d", "e")},
		{"last of multibyte text", Last("mañana", 4), "ñana"},
		{"last of typed slice", Last([]string{"x", "y"}, nil), "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithAfterBefore(t *testing.T) {
	letters := seq("a", "b", "c", "d", "e")

	t.Run("after", func(t *testing.T) {
		r := &recorder{}
		out, err := WithAfter(letters, 3, r.block(nil))
		require.NoError(t, err)
		assert.Equal(t, "de", out)
		assert.Zero(t, r.inverse)
	})

	t.Run("before", func(t *testing.T) {
		r := &recorder{}
		out, err := WithBefore(letters, 3, r.block(nil))
		require.NoError(t, err)
		assert.Equal(t, "ab", out)
	})

	t.Run("before without idx renders every item", func(t *testing.T) {
		r := &recorder{}
		out, err := WithBefore(letters, nil, r.block(nil))
		require.NoError(t, err)
		assert.Equal(t, "abcde", out)
	})

	t.Run("empty window renders nothing", func(t *testing.T) {
		r := &recorder{}
		out, err := WithAfter(letters, 10, r.block(nil))
		require.NoError(t, err)
		assert.Equal(t, "", out)
		assert.Zero(t, r.primaryCalls())
		assert.Zero(t, r.inverse)
	})

	t.Run("nil sequence is an error", func(t *testing.T) {
		_, err := WithAfter(nil, 1, (&recorder{}).block(nil))
		require.ErrorIs(t, err, ErrNilSequence)

		_, err = WithBefore(nil, 1, (&recorder{}).block(nil))
		require.ErrorIs(t, err, ErrNilSequence)
	})

	t.Run("scalar is an error", func(t *testing.T) {
		_, err := WithAfter(3.5, 1, (&recorder{}).block(nil))
		require.ErrorIs(t, err, ErrNotSequence)
	})
}

func TestWithFirstLast(t *testing.T) {
	abc := seq("a", "b", "c")

	tests := []struct {
		name  string
		fn    func(seq, idx interface{}, b *Block) string
		seq   interface{}
		idx   interface{}
		want  string
		calls int
	}{
		{"first single", WithFirst, abc, nil, "a", 1},
		{"first two", WithFirst, abc, 2, "ab", 2},
		{"first numeric string", WithFirst, abc, "2", "ab", 2},
		{"first non-numeric idx", WithFirst, abc, "x", "", 0},
		{"first producer", WithFirst, func() interface{} { return abc }, 1, "a", 1},
		{"first empty", WithFirst, seq(), nil, "", 0},
		{"first nil", WithFirst, nil, nil, "", 0},
		{"last single", WithLast, abc, nil, "c", 1},
		{"last two", WithLast, abc, 2, "bc", 2},
		{"last empty", WithLast, seq(), nil, "", 0},
		{"last nil", WithLast, nil, 2, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			assert.Equal(t, tt.want, tt.fn(tt.seq, tt.idx, r.block(nil)))
			assert.Equal(t, tt.calls, r.primaryCalls())
			assert.Zero(t, r.inverse)
		})
	}
}
