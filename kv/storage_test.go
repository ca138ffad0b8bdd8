package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		s := New().Add("Hello", "world")
		require.Equal(t, "world", s.Value("hello"))
		require.Equal(t, "world", s.Value("HELLO"))
		require.True(t, s.Has("hELLO"))
	})

	t.Run("missing key", func(t *testing.T) {
		s := New()
		require.Equal(t, "", s.Value("nonexistent"))
		require.Equal(t, "fallback", s.ValueOr("nonexistent", "fallback"))

		_, found := s.Get("nonexistent")
		require.False(t, found)
	})

	t.Run("first value wins", func(t *testing.T) {
		s := New().Add("key", "first").Add("key", "second")
		require.Equal(t, "first", s.Value("key"))
	})

	t.Run("values", func(t *testing.T) {
		s := New().Add("key", "a").Add("Key", "b").Add("other", "c")
		require.Equal(t, []string{"a", "b"}, s.Values("key"))
		require.Nil(t, s.Values("nonexistent"))
	})

	t.Run("keys are unique", func(t *testing.T) {
		s := New().Add("a", "1").Add("A", "2").Add("b", "3")
		require.Equal(t, []string{"a", "b"}, s.Keys())
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		s := New().Add("b", "2").Add("a", "1")
		require.Equal(t, []Pair{{"b", "2"}, {"a", "1"}}, s.Unwrap())
	})

	t.Run("clear", func(t *testing.T) {
		s := New().Add("key", "value")
		s.Clear()
		require.Equal(t, 0, s.Len())
		require.False(t, s.Has("key"))
	})
}
