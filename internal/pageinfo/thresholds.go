package pageinfo

// Calibrated against sample screenshots from several devices, in both png and
// jpg encodings. Changing any of these changes classification results.
const (
	// A high binarization level leaves only the solid thumb; a low one also
	// keeps the translucent track.
	ThumbThreshold    uint8 = 60
	TrackThreshold    uint8 = 25
	CurrencyThreshold uint8 = 25

	// Tolerances between the thumb and track boxes, in pixels.
	WidthTolerance = 6
	XTolerance     = 5

	// Thumb height multipliers for the page count.
	onePageFactor  = 1.1
	twoPagesFactor = 2.2
	maxPages       = 3

	// Offset of the thumb inside the track, as a share of track height.
	// The second cut is above 0.5 because the third of three pages was
	// measured at ~0.55 while a second page can reach ~0.51.
	firstPageCut  = 0.10
	secondPageCut = 0.52
)

// linesCut maps a thumb/track height ratio lower bound to a row count.
type linesCut struct {
	minRatio float64
	lines    int
}

// Thumb occupies roughly 1/N of the track for N rows of content beyond the
// visible ones. Measured: 0.94, 0.72-0.73, 0.59-0.60, 0.50-0.51; the 7 and 8
// row cuts are extrapolated.
var linesTable = []linesCut{
	{0.90, 3},
	{0.70, 4},
	{0.57, 5},
	{0.48, 6},
	{0.40, 7},
	{0.36, 8},
}

// maxLines saturates the row estimate; 10+ rows are not distinguished.
const maxLines = 9

// Currency band trim, as a share of its width.
const (
	currencyTrimLeft  = 0.12
	currencyTrimRight = 0.07
)
