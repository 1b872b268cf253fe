package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type started struct{ Name string }

type finished struct{ Name string }

func TestBusDispatchesByType(t *testing.T) {
	b := New()
	var got []string
	On(b, func(_ context.Context, e started) { got = append(got, "start:"+e.Name) })
	On(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.Name) })

	Emit(b, context.Background(), started{Name: "a"})
	Emit(b, context.Background(), finished{Name: "a"})
	Emit(b, context.Background(), 42)

	require.Equal(t, []string{"start:a", "finish:a"}, got)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()
	var first, second int
	unsubscribe := On(b, func(context.Context, started) { first++ })
	On(b, func(context.Context, started) { second++ })

	unsubscribe()
	Emit(b, context.Background(), started{})

	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	Publish(context.Background(), started{})
	Subscribe(func(context.Context, started) { t.Fatal("no bus installed") })()

	b := New()
	Use(b)
	defer Use(nil)
	var names []string
	defer Subscribe(func(_ context.Context, e started) { names = append(names, e.Name) })()

	Publish(context.Background(), started{Name: "x"})
	require.Equal(t, []string{"x"}, names)
}
