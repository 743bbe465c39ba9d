package pathlength

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	missingSnapshotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_missing_snapshot_cache_hits_total",
		Help: "The total number of hits on the missing snapshot cache",
	})
	snapshotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_snapshot_cache_hits_total",
		Help: "The total number of hits on the snapshot cache",
	})
	snapshotCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_snapshot_cache_misses_total",
		Help: "The total number of misses on the snapshot cache",
	})
	snapshotCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_snapshot_cache_evictions_total",
		Help: "The total number of evictions from the snapshot cache",
	})
)

// ErrSnapshotNotFound is returned when a snapshot does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// A Format is a snapshot file format.
type Format string

const (
	FormatAuto    Format = ""
	FormatRaw     Format = "raw"
	FormatGeoTIFF Format = "geotiff"
)

// A SnapshotFilenameFunc returns the filename of a named snapshot.
type SnapshotFilenameFunc func(name string) string

// A snapshot is a loaded heightmap and, for GeoTIFF snapshots, its metadata.
type snapshot struct {
	heightmap *Heightmap
	metadata  *GeoTIFFMetadata
}

// A SnapshotSet is a set of named heightmaps sharing the same dimensions.
type SnapshotSet struct {
	mutex            sync.Mutex
	fsys             fs.FS
	width            int
	height           int
	format           Format
	filenameFunc     SnapshotFilenameFunc
	missingSnapshots sync.Map
	cacheSize        int
	snapshotCache    *lru.Cache[string, *snapshot]
}

// A SnapshotSetOption sets an option on a SnapshotSet.
type SnapshotSetOption func(*SnapshotSet)

// NewSnapshotSet returns a new SnapshotSet with the given options.
func NewSnapshotSet(options ...SnapshotSetOption) (*SnapshotSet, error) {
	s := &SnapshotSet{
		cacheSize: 4,
		filenameFunc: func(name string) string {
			return name
		},
	}
	for _, option := range options {
		option(s)
	}
	if s.fsys == nil {
		return nil, errors.New("no filesystem")
	}

	var err error
	s.snapshotCache, err = lru.NewWithEvict(s.cacheSize, func(string, *snapshot) {
		snapshotCacheEvictions.Inc()
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func WithCacheSize(cacheSize int) SnapshotSetOption {
	return func(s *SnapshotSet) {
		s.cacheSize = cacheSize
	}
}

func WithFS(fsys fs.FS) SnapshotSetOption {
	return func(s *SnapshotSet) {
		s.fsys = fsys
	}
}

func WithFilenameFunc(filenameFunc SnapshotFilenameFunc) SnapshotSetOption {
	return func(s *SnapshotSet) {
		s.filenameFunc = filenameFunc
	}
}

func WithFormat(format Format) SnapshotSetOption {
	return func(s *SnapshotSet) {
		s.format = format
	}
}

// WithSize sets the dimensions of raw snapshots. GeoTIFF snapshots must
// match them when set.
func WithSize(width, height int) SnapshotSetOption {
	return func(s *SnapshotSet) {
		s.width = width
		s.height = height
	}
}

// Snapshot returns the named snapshot.
func (s *SnapshotSet) Snapshot(name string) (*Heightmap, error) {
	snap, err := s.snapshot(name)
	if err != nil {
		return nil, err
	}
	return snap.heightmap, nil
}

// Metadata returns the metadata of the named snapshot. It returns nil for raw
// snapshots.
func (s *SnapshotSet) Metadata(name string) (*GeoTIFFMetadata, error) {
	snap, err := s.snapshot(name)
	if err != nil {
		return nil, err
	}
	return snap.metadata, nil
}

func (s *SnapshotSet) snapshot(name string) (*snapshot, error) {
	if _, ok := s.missingSnapshots.Load(name); ok {
		missingSnapshotCacheHits.Inc()
		return nil, fmt.Errorf("%s: %w", name, ErrSnapshotNotFound)
	}

	if snap, ok := s.snapshotCache.Get(name); ok {
		snapshotCacheHits.Inc()
		return snap, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.missingSnapshots.Load(name); ok {
		missingSnapshotCacheHits.Inc()
		return nil, fmt.Errorf("%s: %w", name, ErrSnapshotNotFound)
	}
	if snap, ok := s.snapshotCache.Get(name); ok {
		snapshotCacheHits.Inc()
		return snap, nil
	}

	snapshotCacheMisses.Inc()

	snap, err := s.load(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.missingSnapshots.Store(name, struct{}{})
		return nil, fmt.Errorf("%s: %w", name, ErrSnapshotNotFound)
	case err != nil:
		return nil, err
	}

	s.snapshotCache.Add(name, snap)
	return snap, nil
}

// Analyzer returns an Analyzer comparing the before and after snapshots.
func (s *SnapshotSet) Analyzer(before, after string, options ...QueryOption) (*Analyzer, error) {
	beforeHeightmap, err := s.Snapshot(before)
	if err != nil {
		return nil, err
	}
	afterHeightmap, err := s.Snapshot(after)
	if err != nil {
		return nil, err
	}
	return NewAnalyzer(beforeHeightmap, afterHeightmap, options...)
}

// load reads the named snapshot from s's filesystem.
func (s *SnapshotSet) load(name string) (*snapshot, error) {
	filename := s.filenameFunc(name)
	format := s.format
	if format == FormatAuto {
		switch path.Ext(filename) {
		case ".tif", ".tiff", ".TIF", ".TIFF":
			format = FormatGeoTIFF
		default:
			format = FormatRaw
		}
	}

	switch format {
	case FormatRaw:
		h, err := LoadHeightmap(s.fsys, filename, s.width, s.height)
		if err != nil {
			return nil, err
		}
		return &snapshot{
			heightmap: h,
		}, nil
	case FormatGeoTIFF:
		h, metadata, err := LoadGeoTIFFHeightmap(s.fsys, filename)
		if err != nil {
			return nil, err
		}
		if s.width != 0 && (h.Width() != s.width || h.Height() != s.height) {
			return nil, fmt.Errorf("%s: %dx%d, expected %dx%d: %w", filename, h.Width(), h.Height(), s.width, s.height, ErrDimensionMismatch)
		}
		return &snapshot{
			heightmap: h,
			metadata:  metadata,
		}, nil
	default:
		return nil, fmt.Errorf("%s: %w", format, errors.ErrUnsupported)
	}
}
