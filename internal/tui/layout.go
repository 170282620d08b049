package tui

// Layout proportions
const (
	// Genre page: selector column beside the results
	SelectorColumnPercent = 30
	MinColumnWidth        = 24

	// Tab bar and footer
	ChromeHeight = 2
)

// splitColumns divides width into a left column and the remainder
func splitColumns(width, leftPercent int) (left, right int) {
	left = max(width*leftPercent/100, MinColumnWidth)
	if left > width {
		left = width
	}
	return left, width - left
}

// headerHeight counts the lines of a rendered header plus a blank separator
func headerHeight(header string) int {
	lines := 1
	for _, r := range header {
		if r == '\n' {
			lines++
		}
	}
	return lines + 1
}
