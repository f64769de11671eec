package assets

import "math/rand"

// Pick returns one uniformly random background for the role as a data
// URI, or "" when the role's directory is empty or missing.
func (l *Library) Pick(role Role) string {
	images := l.Images(role)
	if len(images) == 0 {
		return ""
	}
	return l.DataURI(images[rand.Intn(len(images))])
}

// Sequence hands out backgrounds from a shuffled pool. Indexing wraps
// modulo the pool size, so a document with more slides than images
// reuses backgrounds instead of failing.
type Sequence struct {
	library *Library
	paths   []string
}

// Shuffle returns a full Fisher-Yates permutation of the role's pool.
// Drawing N <= pool-size backgrounds yields N distinct images.
func (l *Library) Shuffle(role Role) *Sequence {
	images := l.Images(role)
	shuffled := make([]string, len(images))
	copy(shuffled, images)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Sequence{library: l, paths: shuffled}
}

// Len returns the pool size.
func (s *Sequence) Len() int { return len(s.paths) }

// At returns the data URI for position i, wrapping modulo the pool
// size. An empty pool yields "".
func (s *Sequence) At(i int) string {
	if len(s.paths) == 0 {
		return ""
	}
	return s.library.DataURI(s.paths[i%len(s.paths)])
}
