package rewrite

const (
	openingBraceByteConstant = byte('{')
	closingBraceByteConstant = byte('}')
)

// BalancedBlock identifies a brace-delimited region within source text.
type BalancedBlock struct {
	// OpenIndex is the index of the opening brace.
	OpenIndex int
	// CloseIndex is the index of the matching closing brace.
	CloseIndex int
}

// Body returns the text between the opening and closing braces.
func (block BalancedBlock) Body(content string) string {
	if block.OpenIndex < 0 || block.CloseIndex <= block.OpenIndex || block.CloseIndex >= len(content) {
		return ""
	}
	return content[block.OpenIndex+1 : block.CloseIndex]
}

// FindBalancedBlock scans content for the first opening brace at or after
// searchStart and returns the block whose closing brace restores the scanner
// to zero depth. Nesting is tracked with an explicit depth counter, so blocks
// containing arbitrarily nested sub-blocks are handled. The second return
// value is false when no opening brace exists or the region never balances.
func FindBalancedBlock(content string, searchStart int) (BalancedBlock, bool) {
	if searchStart < 0 {
		searchStart = 0
	}

	openIndex := -1
	for characterIndex := searchStart; characterIndex < len(content); characterIndex++ {
		if content[characterIndex] == openingBraceByteConstant {
			openIndex = characterIndex
			break
		}
	}
	if openIndex < 0 {
		return BalancedBlock{}, false
	}

	depth := 0
	for characterIndex := openIndex; characterIndex < len(content); characterIndex++ {
		switch content[characterIndex] {
		case openingBraceByteConstant:
			depth++
		case closingBraceByteConstant:
			depth--
			if depth == 0 {
				return BalancedBlock{OpenIndex: openIndex, CloseIndex: characterIndex}, true
			}
		}
	}

	return BalancedBlock{}, false
}
