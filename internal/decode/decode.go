// Package decode turns per-slot class probabilities into captcha text.
package decode

// Argmax returns the index of the largest value in probs. Ties resolve
// to the first-occurring maximum. Must not be called with an empty slice.
func Argmax(probs []float32) int {
	maxIdx := 0
	maxVal := probs[0]
	for i, val := range probs {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}
	return maxIdx
}

// IndexToChar maps a class index to its alphanumeric character:
// 0-9 to '0'-'9', 10-35 to 'a'-'z'.
func IndexToChar(index int) byte {
	if index < 10 {
		return byte('0' + index)
	}
	return byte('a' + index - 10)
}

// Text decodes one probability vector per character slot into the
// predicted string, in slot order.
func Text(slots [][]float32) string {
	chars := make([]byte, len(slots))
	for i, probs := range slots {
		chars[i] = IndexToChar(Argmax(probs))
	}
	return string(chars)
}
