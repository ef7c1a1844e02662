package plot

// Scale linearly maps value from [dataLow, dataHigh] onto
// [targetLow, targetHigh], preserving orientation: dataHigh maps to
// targetHigh and dataLow to targetLow exactly. The caller must guarantee
// dataHigh != dataLow; the band-type range registry enforces that for every
// spec it hands out.
func Scale(value, dataLow, dataHigh, targetLow, targetHigh float64) float64 {
	dataRange := dataHigh - dataLow
	targetRange := targetHigh - targetLow
	return targetHigh - (targetRange*(dataHigh-value))/dataRange
}

// ScaleSlice applies Scale element-wise, returning a new slice.
func ScaleSlice(values []float64, dataLow, dataHigh, targetLow, targetHigh float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Scale(v, dataLow, dataHigh, targetLow, targetHigh)
	}
	return out
}
