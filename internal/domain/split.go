package domain

// SplitMode selects how a source document is partitioned into outputs.
type SplitMode string

const (
	SplitModeIndividual SplitMode = "individual"
	SplitModeRanges     SplitMode = "ranges"
	SplitModeCustom     SplitMode = "custom"
)

// PageRange is an inclusive, 1-indexed block of source pages that becomes
// one output file.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pages returns the number of pages covered by the range.
func (r PageRange) Pages() int {
	return r.End - r.Start + 1
}

// SplitRequest carries the mode and mode-specific parameters for one split
// operation. PagesPerFile applies to SplitModeRanges, Ranges to SplitModeCustom.
type SplitRequest struct {
	Mode         SplitMode
	PagesPerFile int
	Ranges       []PageRange
}
