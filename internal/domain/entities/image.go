package entities

// Size labels of an image candidate.
const (
	ImageSizeRaw     = "raw"
	ImageSizeFull    = "full"
	ImageSizeRegular = "regular"
	ImageSizeSmall   = "small"
	ImageSizeThumb   = "thumb"
)

// ImageCandidate is one photo returned by the image source.
type ImageCandidate struct {
	URLs map[string]string `json:"urls"` // size label -> URL
}

// URL returns the URL stored under the given size label.
func (c ImageCandidate) URL(size string) (string, bool) {
	u, ok := c.URLs[size]
	if !ok || u == "" {
		return "", false
	}
	return u, true
}
