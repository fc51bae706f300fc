package engine

// Randomizer is the source of randomness for the bag. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// refillThreshold is the queue length at or below which a new bag is appended.
const refillThreshold = len(PieceTypes)

// Bag is a 7-bag piece queue: pieces are dealt from shuffled permutations of
// all seven types, and a new bag never starts with the piece that precedes it.
type Bag struct {
	rng   Randomizer
	queue []PieceType
	last  PieceType // most recently dealt piece
}

// NewBag creates an empty bag that shuffles with rng.
func NewBag(rng Randomizer) *Bag {
	return &Bag{rng: rng}
}

// Reset empties the queue and forgets the last dealt piece.
func (b *Bag) Reset() {
	b.queue = b.queue[:0]
	b.last = Empty
}

// Refill appends one shuffled permutation of all seven pieces.
func (b *Bag) Refill() {
	bag := PieceTypes

	// Fisher-Yates over the fixed array.
	for i := len(bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}

	if prev := b.tail(); prev != Empty && bag[0] == prev {
		bag[0], bag[1] = bag[1], bag[0]
	}

	b.queue = append(b.queue, bag[:]...)
}

// tail returns the piece that the next appended bag will follow.
func (b *Bag) tail() PieceType {
	if n := len(b.queue); n > 0 {
		return b.queue[n-1]
	}
	return b.last
}

// Next deals the next piece, refilling first when the queue is low.
func (b *Bag) Next() PieceType {
	if len(b.queue) <= refillThreshold {
		b.Refill()
	}
	p := b.queue[0]
	b.queue = b.queue[1:]
	b.last = p
	return p
}

// Peek returns up to n upcoming pieces without dealing them.
func (b *Bag) Peek(n int) []PieceType {
	if n > len(b.queue) || n < 0 {
		n = len(b.queue)
	}
	return append([]PieceType(nil), b.queue[:n]...)
}

// Len returns the number of queued pieces.
func (b *Bag) Len() int {
	return len(b.queue)
}
