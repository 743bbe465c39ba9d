package pathlength

import (
	"io/fs"
	"slices"
)

// Mount St. Helens snapshot names.
const (
	StHelensPre  = "pre"
	StHelensPost = "post"
)

// NewStHelens returns a SnapshotSet for the 512x512 Mount St. Helens rasters
// from before and after the 1980 eruption, stored as pre.data and post.data.
func NewStHelens(fsys fs.FS, options ...SnapshotSetOption) (*SnapshotSet, error) {
	return NewSnapshotSet(slices.Concat(
		[]SnapshotSetOption{
			WithFS(fsys),
			WithSize(512, 512),
			WithFormat(FormatRaw),
			WithFilenameFunc(func(name string) string {
				return name + ".data"
			}),
		},
		options,
	)...)
}
