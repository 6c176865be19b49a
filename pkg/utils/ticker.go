package utils

import "strings"

const idxSuffix = ".JK"

// NormalizeIDXTicker upper-cases the ticker and appends ".JK" to bare four letter IDX codes.
func NormalizeIDXTicker(ticker string) string {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if len(symbol) == 4 && !strings.HasSuffix(symbol, idxSuffix) {
		symbol += idxSuffix
	}
	return symbol
}

// BareIDXCode strips the ".JK" exchange suffix.
func BareIDXCode(ticker string) string {
	return strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(ticker)), idxSuffix)
}
