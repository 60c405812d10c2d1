package chart

import (
	"math"
	"strconv"
	"strings"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null, which Plotly
// treats as a missing value.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func numbers(s []float64) []Number {
	out := make([]Number, len(s))
	for i, v := range s {
		out[i] = Number(v)
	}
	return out
}

func matrix(rows [][]float64) [][]Number {
	out := make([][]Number, len(rows))
	for i, row := range rows {
		out[i] = numbers(row)
	}
	return out
}

// FormatValue formats v the way a JavaScript number converts to a string:
// shortest digits, exponent form below 1e-6 and from 1e21 up, "Infinity".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if a := math.Abs(v); a < 1e-6 || a >= 1e21 {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		n, _ := strconv.Atoi(exp)
		if n < 0 {
			return mant + "e" + strconv.Itoa(n)
		}
		return mant + "e+" + strconv.Itoa(n)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
