package pageinfo

import "github.com/rs/zerolog/log"

// EstimateTotalPages guesses how many pages the list spans from how much of
// the track the thumb covers. At most three pages are assumed.
func EstimateTotalPages(thumbW, thumbH, trackW, trackH int) (int, error) {
	if err := checkWidth(thumbW, trackW); err != nil {
		return 0, err
	}

	h, th := float64(thumbH), float64(trackH)
	if h*onePageFactor > th {
		return 1, nil
	}
	if h*twoPagesFactor > th {
		return 2, nil
	}
	return maxPages, nil
}

// EstimateCurrentPage guesses the visible page from the empty space above
// the thumb, relative to the track height.
func EstimateCurrentPage(thumbX, thumbY, trackX, trackY, trackH int) (int, error) {
	if d := abs(thumbX - trackX); d > XTolerance {
		return 0, &GeometryMismatchError{Axis: "x", Thumb: thumbX, Track: trackX, Tolerance: XTolerance}
	}
	if trackH <= 0 {
		return 1, nil
	}

	ratio := float64(thumbY-trackY) / float64(trackH)
	log.Debug().Float64("ratio", ratio).Msg("scrollbar offset ratio")
	switch {
	case ratio < firstPageCut:
		return 1, nil
	case ratio < secondPageCut:
		return 2, nil
	default:
		return maxPages, nil
	}
}

// EstimateTotalLines guesses the row count of the full list. Because the
// estimate relies on the scrollbar, lists of two rows or fewer cannot be
// measured and the smallest answer is 3.
func EstimateTotalLines(thumbW, thumbH, trackW, trackH int) (int, error) {
	if err := checkWidth(thumbW, trackW); err != nil {
		return 0, err
	}
	if trackH <= 0 {
		return linesTable[0].lines, nil
	}

	ratio := float64(thumbH) / float64(trackH)
	log.Debug().Float64("ratio", ratio).Msg("scrollbar size ratio")
	for _, c := range linesTable {
		if ratio > c.minRatio {
			return c.lines, nil
		}
	}
	return maxLines, nil
}

func checkWidth(thumbW, trackW int) error {
	if abs(trackW-thumbW) > WidthTolerance {
		return &GeometryMismatchError{Axis: "width", Thumb: thumbW, Track: trackW, Tolerance: WidthTolerance}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
