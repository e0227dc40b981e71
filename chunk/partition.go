package chunk

import (
	"errors"
	"fmt"
	"iter"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidChunkSize is returned by the partitioning functions when the
// requested chunk size is not positive.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// maxBufferCapacity bounds the capacity preallocated for a buffered chunk.
const maxBufferCapacity = 1024

func checkChunkSize(chunkSize int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidChunkSize, chunkSize)
	}
	return nil
}

/*
PartitionAll returns a sequence of the chunks of s in order, each of
length chunkSize, except for the last chunk, which may be shorter.
The sequence is empty if s is empty.

Each chunk shares the backing array of s, and constructing a chunk
does not touch the elements of s. The elements of s must not be
modified while any of the chunks are in use.

The returned sequence can be iterated more than once. PartitionAll
returns an error wrapping ErrInvalidChunkSize if chunkSize <= 0.
*/
func PartitionAll[T any](chunkSize int, s []T) (iter.Seq[Chunk[T]], error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	return func(yield func(Chunk[T]) bool) {
		for start, index := 0, 0; start < len(s); start, index = start+chunkSize, index+1 {
			end := min(len(s), start+chunkSize)
			if !yield(newChunk(s, start, end, index)) {
				return
			}
		}
	}, nil
}

/*
PartitionSeq returns a sequence of the chunks of the elements of s in
order, with the same chunk lengths as PartitionAll.

Since s cannot be sliced, the elements of each chunk are buffered into
a fresh slice before the chunk is yielded. Chunks remain valid after
iteration proceeds.

The returned sequence can be iterated more than once if s can.
PartitionSeq returns an error wrapping ErrInvalidChunkSize if
chunkSize <= 0.
*/
func PartitionSeq[T any](chunkSize int, s iter.Seq[T]) (iter.Seq[Chunk[T]], error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	// Large chunk sizes grow their buffer on demand.
	capacity := min(chunkSize, maxBufferCapacity)
	return func(yield func(Chunk[T]) bool) {
		index := 0
		buf := make([]T, 0, capacity)
		for x := range s {
			buf = append(buf, x)
			if len(buf) == chunkSize {
				if !yield(newChunk(buf, 0, len(buf), index)) {
					return
				}
				index++
				buf = make([]T, 0, capacity)
			}
		}
		if len(buf) > 0 {
			yield(newChunk(buf, 0, len(buf), index))
		}
	}, nil
}

/*
PartitionVector returns a sequence of the chunks of the elements of v
in order, with the same chunk lengths as PartitionAll.

If v is a *mat.VecDense whose elements are stored contiguously, the
chunks share its raw backing data, as with PartitionAll. Otherwise,
for example for column views of a matrix, the elements are read with
AtVec and buffered as with PartitionSeq.

PartitionVector returns an error wrapping ErrInvalidChunkSize if
chunkSize <= 0.
*/
func PartitionVector(chunkSize int, v mat.Vector) (iter.Seq[Chunk[float64]], error) {
	if vec, ok := v.(*mat.VecDense); ok {
		if raw := vec.RawVector(); (raw.Inc == 1) || (raw.N <= 1) {
			return PartitionAll(chunkSize, raw.Data[:raw.N])
		}
	}
	return PartitionSeq(chunkSize, func(yield func(float64) bool) {
		for i, n := 0, v.Len(); i < n; i++ {
			if !yield(v.AtVec(i)) {
				return
			}
		}
	})
}
