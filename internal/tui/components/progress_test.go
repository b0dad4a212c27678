package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	t.Run("creates progress with specified total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(7)
		require.Equal(t, 7, p.total)
	})

	t.Run("creates progress with zero total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(0)
		require.Equal(t, 0, p.total)
	})

	t.Run("creates progress with custom gradient", func(t *testing.T) {
		t.Parallel()
		p := NewProgressGradient(4, "#5A56E0", "#EE6FF8")
		require.Equal(t, 4, p.total)
	})
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	t.Run("renders with zero total", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(0).View(0)
		require.Contains(t, view, "0/0")
	})

	t.Run("renders with partial completion", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(6).View(3)
		require.Contains(t, view, "3/6")
		require.NotEmpty(t, view)
	})

	t.Run("renders with full completion", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(6).View(6)
		require.Contains(t, view, "6/6")
	})

	t.Run("caps the bar but keeps the real count beyond total", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(6).View(9)
		require.Contains(t, view, "9/6")
	})

	t.Run("bar takes up space beyond the label", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(10).View(5)
		require.True(t, len(strings.TrimSpace(view)) > len("5/10"),
			"expected view to contain the bar in addition to the label")
	})
}
