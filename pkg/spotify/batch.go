package spotify

import "fmt"

// Batches is a sequence of identifier groups, each small enough to send in
// one request.
type Batches [][]string

// Chunk splits ids into consecutive batches of at most size identifiers.
// The last batch may be shorter. size must be between 1 and MaxFeatureIDs.
func Chunk(ids []string, size int) (Batches, error) {
	if size <= 0 {
		return nil, fmt.Errorf("spotify: batch size must be positive, got %d", size)
	}
	if size > MaxFeatureIDs {
		return nil, fmt.Errorf("%w: batch size %d exceeds %d", ErrBatchTooLarge, size, MaxFeatureIDs)
	}

	batches := make(Batches, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end:end])
	}
	return batches, nil
}

// Validate returns an error wrapping ErrBatchTooLarge if any batch holds
// more than limit identifiers.
func (b Batches) Validate(limit int) error {
	for i, batch := range b {
		if len(batch) > limit {
			return fmt.Errorf("%w: batch %d has %d ids (max %d)", ErrBatchTooLarge, i, len(batch), limit)
		}
	}
	return nil
}

// Len returns the total number of identifiers across all batches.
func (b Batches) Len() int {
	n := 0
	for _, batch := range b {
		n += len(batch)
	}
	return n
}
