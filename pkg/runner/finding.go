package runner

// Fragment contains the data to be scanned
type Fragment struct {
	// Raw is the raw content of the fragment
	Raw string

	Bytes []byte

	// FilePath is the path to the file if applicable
	FilePath string

	// newlineIndices is a list of indices of newlines in the raw content.
	// This is used to calculate the line location of a finding
	newlineIndices [][]int
}

type matchLocation struct {
	startLine      int
	endLine        int
	startColumn    int
	endColumn      int
	startLineIndex int
	endLineIndex   int
}

// location maps a match index pair onto line/column positions using the
// fragment newline indices.
func location(fragment Fragment, matchIndex []int) matchLocation {
	var loc matchLocation

	start := matchIndex[0]
	end := matchIndex[1]

	startLine, startLineIndex := 0, 0
	endLine, endLineIndex := 0, 0
	for _, nl := range fragment.newlineIndices {
		if nl[0] < start {
			startLine++
			startLineIndex = nl[1]
		}
		if nl[0] < end {
			endLine++
			endLineIndex = nl[1]
		}
	}

	loc.startLine = startLine
	loc.startColumn = start - startLineIndex
	loc.startLineIndex = startLineIndex

	loc.endLine = endLine
	loc.endColumn = end - endLineIndex

	// end of the line holding the match end
	loc.endLineIndex = len(fragment.Raw)
	for _, nl := range fragment.newlineIndices {
		if nl[0] >= end {
			loc.endLineIndex = nl[0]
			break
		}
	}

	return loc
}
