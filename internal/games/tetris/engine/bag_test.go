package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed answers; a negative entry means "n-1",
// which leaves the element in place during Fisher-Yates.
type scriptedRand struct {
	vals []int
	i    int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	if v < 0 || v >= n {
		return n - 1
	}
	return v
}

func assertPermutation(t *testing.T, bag []PieceType) {
	t.Helper()
	seen := make(map[PieceType]int)
	for _, p := range bag {
		seen[p]++
	}
	require.Len(t, seen, len(PieceTypes), "bag %v", bag)
	for _, p := range PieceTypes {
		require.Equal(t, 1, seen[p], "bag %v", bag)
	}
}

func TestBagEveryBagIsPermutation(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 12345} {
		b := NewBag(rand.New(rand.NewSource(seed)))
		for i := 0; i < 300; i++ {
			b.Refill()
		}

		q := b.Peek(-1)
		require.Len(t, q, 300*7)
		for start := 0; start < len(q); start += 7 {
			assertPermutation(t, q[start:start+7])
			if start > 0 {
				assert.NotEqual(t, q[start-1], q[start], "seed %d: bag at %d repeats previous piece", seed, start)
			}
		}
	}
}

func TestBagSeamSwap(t *testing.T) {
	// First bag: identity (I J L O S T Z).
	// Second bag: the first swap moves Z to the front, then identity.
	rng := &scriptedRand{vals: []int{-1, -1, -1, -1, -1, -1, 0, -1, -1, -1, -1, -1}}
	b := NewBag(rng)
	b.Refill()
	b.Refill()

	q := b.Peek(-1)
	assert.Equal(t, []PieceType{I, J, L, O, S, T, Z}, q[:7])
	// Z J L O S T I would repeat Z across the seam, so the first two swap.
	assert.Equal(t, []PieceType{J, Z, L, O, S, T, I}, q[7:])
}

func TestBagSeamAfterDealing(t *testing.T) {
	// Identity bags always end with Z; a bag starting with Z must swap even
	// when the queue was drained and only the last dealt piece is known.
	rng := &scriptedRand{vals: []int{-1, -1, -1, -1, -1, -1, 0, -1, -1, -1, -1, -1}}
	b := NewBag(rng)
	b.Refill()
	for i := 0; i < 7; i++ {
		b.queue = b.queue[1:]
	}
	b.last = Z

	b.Refill()
	assert.Equal(t, J, b.Peek(1)[0])
}

func TestBagNextRefillsAtLowWater(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(3)))

	b.Next()
	assert.Equal(t, 6, b.Len())

	b.Next()
	assert.Equal(t, 12, b.Len(), "queue of 6 is at low water and must refill before dealing")

	for i := 0; i < 100; i++ {
		b.Next()
		assert.Greater(t, b.Len(), 6)
	}
}

func TestBagNextDealsQueueOrder(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(9)))
	b.Refill()
	b.Refill()
	want := b.Peek(8)

	got := make([]PieceType, 0, 8)
	for i := 0; i < 8; i++ {
		got = append(got, b.Next())
	}
	assert.Equal(t, want, got)
}

func TestBagDealtSequenceWindows(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(2024)))
	dealt := make([]PieceType, 0, 700)
	for i := 0; i < 700; i++ {
		dealt = append(dealt, b.Next())
	}
	for start := 0; start < len(dealt); start += 7 {
		assertPermutation(t, dealt[start:start+7])
	}
	for i := 1; i < len(dealt); i++ {
		if i%7 == 0 {
			assert.NotEqual(t, dealt[i-1], dealt[i])
		}
	}
}

func TestBagPeekAndReset(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(5)))
	b.Refill()

	assert.Len(t, b.Peek(3), 3)
	assert.Len(t, b.Peek(100), 7)

	peeked := b.Peek(1)
	peeked[0] = Empty
	assert.NotEqual(t, Empty, b.Peek(1)[0], "Peek must return a copy")

	b.Next()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, Empty, b.last)
}
