package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles in the tileset.
// It yields tiles and their data. Iteration panics on unrecoverable errors.
func IterTiles(r Visitor) iter.Seq2[Tile, []byte] {
	return func(yield func(Tile, []byte) bool) {
		err := r.VisitTiles(func(t Tile, tileData []byte) error {
			if !yield(t, tileData) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
