package input_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/input"
)

func TestActionClassification(t *testing.T) {
	level := map[input.Action]bool{
		input.MoveLeft:  true,
		input.MoveRight: true,
		input.SoftDrop:  true,
	}
	for _, a := range input.Actions {
		assert.Equal(t, level[a], a.Repeats(), a.String())
	}

	assert.True(t, input.Press(0, input.Rotate).Edge())
	assert.False(t, input.Release(0, input.Rotate).Edge())
	assert.False(t, input.Press(0, input.MoveLeft).Edge())
}

func TestParseAction(t *testing.T) {
	for _, a := range input.Actions {
		got, err := input.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := input.ParseAction(" Hard_Drop ")
	require.NoError(t, err)
	assert.Equal(t, input.HardDrop, got)

	_, err = input.ParseAction("hold")
	assert.Error(t, err)
}

func TestKeymap(t *testing.T) {
	const (
		keyLeft input.Key = iota + 100
		keyRight
		keyA
		keyD
	)

	km := input.NewKeymap()
	km.BindLayout(0, input.Layout{
		input.MoveLeft:  {keyLeft},
		input.MoveRight: {keyRight},
	})
	km.BindLayout(1, input.Layout{
		input.MoveLeft:  {keyA},
		input.MoveRight: {keyD},
	})

	assert.Equal(t, 4, km.Len())
	assert.Equal(t, 2, km.Players())
	assert.Equal(t, []input.Key{keyLeft, keyRight, keyA, keyD}, km.Keys())

	ev, ok := km.Translate(keyD, true)
	require.True(t, ok)
	assert.Equal(t, input.Press(1, input.MoveRight), ev)

	ev, ok = km.Translate(keyLeft, false)
	require.True(t, ok)
	assert.Equal(t, input.Release(0, input.MoveLeft), ev)

	_, ok = km.Translate(7, true)
	assert.False(t, ok)

	km.Bind(keyA, input.Binding{Player: 0, Action: input.Rotate})
	b, ok := km.Lookup(keyA)
	require.True(t, ok)
	assert.Equal(t, input.Binding{Player: 0, Action: input.Rotate}, b)

	assert.True(t, km.Unbind(keyA))
	assert.False(t, km.Unbind(keyA))
	assert.Equal(t, 3, km.Len())
}

func TestBindLayoutSharedKey(t *testing.T) {
	const key input.Key = 32
	for i := 0; i < 20; i++ {
		km := input.NewKeymap()
		km.BindLayout(0, input.Layout{
			input.Rotate:   {key},
			input.HardDrop: {key},
			input.MoveLeft: {key},
		})
		b, ok := km.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, input.Rotate, b.Action)
		assert.Equal(t, 1, km.Len())
	}
}

func TestQueue(t *testing.T) {
	var q input.Queue
	assert.Empty(t, q.Poll(0))

	var wg sync.WaitGroup
	for p := 0; p < 2; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Push(input.Press(p, input.Rotate))
			}
		}(p)
	}
	wg.Wait()

	assert.Len(t, q.Poll(0), 100)
	assert.Empty(t, q.Poll(0))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "p2 hard_drop press", input.Press(1, input.HardDrop).String())
	assert.Equal(t, "p1 soft_drop release", input.Release(0, input.SoftDrop).String())
}
