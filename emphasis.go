package bionic

// BoldCount returns how many leading letters or digits of a word with n of
// them are emphasised:
//
//	n      bold
//	0      0
//	1-3    1
//	4      2
//	5+     floor(n*0.4), at least 1
func BoldCount(n int) int {
	switch {
	case n <= 0:
		return 0
	case n <= 3:
		return 1
	case n == 4:
		return 2
	default:
		// floor(n*0.4) in integer arithmetic.
		return max(1, n*2/5)
	}
}
