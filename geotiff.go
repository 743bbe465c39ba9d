package pathlength

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
	xtiff "golang.org/x/image/tiff"
)

// GeoTIFFMetadata is the metadata of a GeoTIFF heightmap.
type GeoTIFFMetadata struct {
	ScaleX float64 // Model units per pixel in X, zero if unknown.
	ScaleY float64 // Model units per pixel in Y, zero if unknown.
	NoData string  // GDAL no data value, empty if unset.
}

// A geoTIFFIFD is a struct into which github.com/google/tiff can unmarshal an
// IFD.
type geoTIFFIFD struct {
	BitsPerSample      uint16    `tiff:"field,tag=258"`
	SamplesPerPixel    uint16    `tiff:"field,tag=277"`
	SampleFormat       uint16    `tiff:"field,tag=339"`
	ModelPixelScaleTag []float64 `tiff:"field,tag=33550"`
	GDALNoData         string    `tiff:"field,tag=42113"`
}

// LoadGeoTIFFHeightmap reads a single band 8-bit GeoTIFF from fsys.
func LoadGeoTIFFHeightmap(fsys fs.FS, filename string) (*Heightmap, *GeoTIFFMetadata, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, nil, err
	}

	tiffTIFF, err := tiff.Parse(bytes.NewReader(data), tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(tiffTIFF.IFDs()) != 1 {
		return nil, nil, fmt.Errorf("%s: found %d IFDs, expected 1", filename, len(tiffTIFF.IFDs()))
	}

	var ifd geoTIFFIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	if ifd.BitsPerSample != 8 ||
		ifd.SamplesPerPixel > 1 ||
		ifd.SampleFormat > 1 {
		return nil, nil, fmt.Errorf("%s: %w", filename, errors.ErrUnsupported)
	}

	metadata := &GeoTIFFMetadata{
		NoData: ifd.GDALNoData,
	}
	if len(ifd.ModelPixelScaleTag) >= 2 {
		metadata.ScaleX = ifd.ModelPixelScaleTag[0]
		metadata.ScaleY = ifd.ModelPixelScaleTag[1]
	}

	img, err := xtiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %T: %w", filename, img, errors.ErrUnsupported)
	}

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := gray.PixOffset(bounds.Min.X, y)
		pixels = append(pixels, gray.Pix[offset:offset+width]...)
	}

	h, err := NewHeightmap(width, height, pixels)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return h, metadata, nil
}
