package calculator

import (
	"docchart/model"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid holds one DOC computation. DOC rows follow ROP, columns follow RPM.
type Grid struct {
	RPM    []float64
	ROP    []float64
	DOC    *mat.Dense
	MaxDoc float64
}

// Compute builds the RPM/ROP axes and the DOC matrix for p. Non-numeric input
// is not rejected; NaN flows through every derived value.
func Compute(p model.Params) *Grid {
	g := &Grid{
		RPM: Axis(p.RpmMin, p.RpmMax),
		ROP: Axis(p.RopMin, p.RopMax),
		DOC: mat.NewDense(model.Points, model.Points, nil),
	}
	for i, rop := range g.ROP {
		for j, rpm := range g.RPM {
			g.DOC.Set(i, j, Doc(rop, rpm))
		}
	}
	g.MaxDoc = maxDoc(g.DOC)
	return g
}

// Axis 在 [lo, hi] 上线性插值 model.Points 个点，包含两端
func Axis(lo, hi float64) []float64 {
	axis := make([]float64, model.Points)
	for i := range axis {
		axis[i] = lo + (hi-lo)*float64(i)/model.Intervals
	}
	// 浮点误差可能使最后一个点偏离 hi
	if !math.IsNaN(axis[model.Intervals]) {
		axis[model.Intervals] = hi
	}
	return axis
}

// Doc 计算每转切深 (in/rev)，ROP 单位 ft/hr
func Doc(rop, rpm float64) float64 {
	if rpm == 0 {
		return model.ZeroRpmDoc
	}
	return (rop * 12) / (rpm * 60)
}

// maxDoc 为 0 或 NaN 时返回 1，避免色阶退化
func maxDoc(m *mat.Dense) float64 {
	data := m.RawMatrix().Data
	if floats.HasNaN(data) {
		return 1
	}
	if v := floats.Max(data); v != 0 {
		return v
	}
	return 1
}

// Rows returns the DOC matrix as row slices aligned with ROP.
func (g *Grid) Rows() [][]float64 {
	r, _ := g.DOC.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, g.DOC)
	}
	return rows
}

// Stop returns the colorscale position where the fill turns from not
// engaged to engaged. It is not clamped to [0, 1].
func (g *Grid) Stop(docValue float64) float64 {
	return docValue / g.MaxDoc
}
