package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Do() }

func TestCheckInit(t *testing.T) {
	t.Run(`initialized dependencies pass`, func(t *testing.T) {
		value := 1
		require.NotPanics(t, func() { CheckInit("int", &value, "name", "x") })
	})

	t.Run(`typed nil pointer is detected`, func(t *testing.T) {
		var ptr *int
		require.PanicsWithValue(t, "ptr dependency not initialized", func() { CheckInit("ptr", ptr) })
	})

	t.Run(`nil interface is detected`, func(t *testing.T) {
		var p provider
		require.Panics(t, func() { CheckInit("provider", p) })
	})

	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("only name") })
	})
}
