package utils

import (
	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/go-gota/gota/dataframe"
)

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// GetStr returns the cell as text, or "" when the column is absent or null.
func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil {
		return ""
	}
	if !containsString(df.Names(), col) {
		return ""
	}
	elem := df.Col(col).Elem(rowIdx)
	if elem.IsNA() {
		return ""
	}
	return CleanString(elem.String())
}

// GetFloat returns the cell coerced to a number.
func GetFloat(col string, rowIdx int, df *dataframe.DataFrame) types.Float {
	if df == nil {
		return types.Missing
	}
	if !containsString(df.Names(), col) {
		return types.Missing
	}
	elem := df.Col(col).Elem(rowIdx)
	if elem.IsNA() {
		return types.Missing
	}
	return ParseFloat(elem.String())
}
