package ebcell

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/notargets/EBGeometry/utils"
)

var le = binary.LittleEndian

// NBytes returns the size of the values of components [start, start+num)
// over box: dense values of every cell, then the multi-valued fragments
func (f *CellFAB) NBytes(box utils.Box, start, num int) int {
	return 8 * num * (box.NumPts() + f.countIrregular(box))
}

func (f *CellFAB) countIrregular(box utils.Box) int {
	n := 0
	for _, vi := range f.irreg {
		if box.Contains(vi.Cell) {
			n++
		}
	}
	return n
}

func (f *CellFAB) checkSubRegion(box utils.Box, start, num int) error {
	if box.IsEmpty() || !f.region.ContainsBox(box) {
		return fmt.Errorf("%w: %v is not inside %v", ErrRegionMismatch, box, f.region)
	}
	if start < 0 || num < 0 || start+num > f.nComp {
		return fmt.Errorf("%w: components [%d,%d) of %d", ErrCompMismatch, start, start+num, f.nComp)
	}
	return nil
}

// CopyToMem writes the values described by NBytes into buf, component-major.
// The receiver must already hold a CellFAB with the same layout.
func (f *CellFAB) CopyToMem(box utils.Box, start, num int, buf []byte) (int, error) {
	if err := f.checkSubRegion(box, start, num); err != nil {
		return 0, err
	}
	n := f.NBytes(box, start, num)
	if len(buf) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(buf))
	}

	pos := 0
	for comp := start; comp < start+num; comp++ {
		dense := f.DataPtr(Dense, comp)
		for _, iv := range box.Cells() {
			le.PutUint64(buf[pos:], math.Float64bits(dense[f.region.Offset(iv)]))
			pos += 8
		}
	}
	for comp := start; comp < start+num; comp++ {
		sparse := f.DataPtr(Sparse, comp)
		for i, vi := range f.irreg {
			if box.Contains(vi.Cell) {
				le.PutUint64(buf[pos:], math.Float64bits(sparse[i]))
				pos += 8
			}
		}
	}
	return pos, nil
}

// CopyFromMem is the inverse of CopyToMem. Components outside
// [start, start+num) and cells outside box are left untouched.
func (f *CellFAB) CopyFromMem(box utils.Box, start, num int, buf []byte) (int, error) {
	if err := f.checkSubRegion(box, start, num); err != nil {
		return 0, err
	}
	n := f.NBytes(box, start, num)
	if len(buf) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(buf))
	}

	pos := 0
	for comp := start; comp < start+num; comp++ {
		dense := f.DataPtr(Dense, comp)
		for _, iv := range box.Cells() {
			dense[f.region.Offset(iv)] = math.Float64frombits(le.Uint64(buf[pos:]))
			pos += 8
		}
	}
	for comp := start; comp < start+num; comp++ {
		sparse := f.DataPtr(Sparse, comp)
		for i, vi := range f.irreg {
			if box.Contains(vi.Cell) {
				sparse[i] = math.Float64frombits(le.Uint64(buf[pos:]))
				pos += 8
			}
		}
	}
	return pos, nil
}

// NBytesFull returns the size of the self-contained serialization
func (f *CellFAB) NBytesFull() int {
	dim := f.region.Dim
	header := 4 + 8*dim + 4
	dense := 8 * len(f.dense)
	sparse := 4 + len(f.irreg)*(4*dim+4+8*f.nComp)
	return header + dense + sparse
}

// CopyToMemFull writes the region, the component count, the dense block
// and every multi-valued fragment with its values into buf
func (f *CellFAB) CopyToMemFull(buf []byte) (int, error) {
	n := f.NBytesFull()
	if len(buf) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(buf))
	}
	f.appendFull(buf[:0])
	return n, nil
}

func (f *CellFAB) appendFull(b []byte) []byte {
	dim := f.region.Dim
	b = le.AppendUint32(b, uint32(int32(dim)))
	for d := 0; d < dim; d++ {
		b = le.AppendUint32(b, uint32(int32(f.region.Lo[d])))
	}
	for d := 0; d < dim; d++ {
		b = le.AppendUint32(b, uint32(int32(f.region.Hi[d])))
	}
	b = le.AppendUint32(b, uint32(int32(f.nComp)))
	for _, v := range f.dense {
		b = le.AppendUint64(b, math.Float64bits(v))
	}

	m := len(f.irreg)
	b = le.AppendUint32(b, uint32(int32(m)))
	for i, vi := range f.irreg {
		for d := 0; d < dim; d++ {
			b = le.AppendUint32(b, uint32(int32(vi.Cell[d])))
		}
		b = le.AppendUint32(b, uint32(int32(vi.Fragment)))
		for comp := 0; comp < f.nComp; comp++ {
			b = le.AppendUint64(b, math.Float64bits(f.sparse[comp*m+i]))
		}
	}
	return b
}

// reader consumes little-endian fields, remembering the first short read
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) i32() int {
	if r.err != nil {
		return 0
	}
	if len(r.buf)-r.pos < 4 {
		r.err = fmt.Errorf("%w: truncated at byte %d", ErrShortBuffer, r.pos)
		return 0
	}
	v := int32(le.Uint32(r.buf[r.pos:]))
	r.pos += 4
	return int(v)
}

func (r *reader) f64() float64 {
	if r.err != nil {
		return 0
	}
	if len(r.buf)-r.pos < 8 {
		r.err = fmt.Errorf("%w: truncated at byte %d", ErrShortBuffer, r.pos)
		return 0
	}
	v := math.Float64frombits(le.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v
}

// decodeFull parses a full serialization into a new CellFAB whose layout
// is rebuilt from the serialized fragments. Cells without fragments are
// recorded as regular.
func decodeFull(buf []byte) (*CellFAB, int, error) {
	r := &reader{buf: buf}
	dim := r.i32()
	if r.err == nil && (dim < 1 || dim > utils.MaxDim) {
		return nil, 0, fmt.Errorf("ebcell: invalid dimension %d", dim)
	}
	var region utils.Box
	region.Dim = dim
	for d := 0; d < dim; d++ {
		region.Lo[d] = r.i32()
	}
	for d := 0; d < dim; d++ {
		region.Hi[d] = r.i32()
	}
	nComp := r.i32()
	if r.err != nil {
		return nil, 0, r.err
	}
	if region.IsEmpty() || nComp < 1 {
		return nil, 0, fmt.Errorf("ebcell: invalid header: region %v, %d components", region, nComp)
	}
	// Every cell holds at least one dense value, which bounds each extent
	// and keeps the products below from overflowing
	maxValues := (len(buf) - r.pos) / 8
	numPts := 1
	for d := 0; d < dim; d++ {
		if region.Size(d) > maxValues/numPts {
			return nil, 0, fmt.Errorf("%w: region %v", ErrShortBuffer, region)
		}
		numPts *= region.Size(d)
	}
	if nComp > maxValues/numPts {
		return nil, 0, fmt.Errorf("%w: dense block of %d cells by %d components", ErrShortBuffer, numPts, nComp)
	}
	dense := make([]float64, numPts*nComp)
	for i := range dense {
		dense[i] = r.f64()
	}

	m := r.i32()
	if r.err != nil {
		return nil, 0, r.err
	}
	if m < 0 || (len(buf)-r.pos)/(4*dim+4+8*nComp) < m {
		return nil, 0, fmt.Errorf("%w: %d fragments", ErrShortBuffer, m)
	}
	frags := make([]VolIndex, m)
	values := make([]float64, m*nComp)
	counts := make([]int, numPts)
	for i := range counts {
		counts[i] = 1
	}
	for i := 0; i < m; i++ {
		for d := 0; d < dim; d++ {
			frags[i].Cell[d] = r.i32()
		}
		frags[i].Fragment = r.i32()
		for comp := 0; comp < nComp; comp++ {
			values[comp*m+i] = r.f64()
		}
		if !region.Contains(frags[i].Cell) || frags[i].Fragment < 0 {
			return nil, 0, fmt.Errorf("ebcell: fragment %v outside %v", frags[i], region)
		}
		off := region.Offset(frags[i].Cell)
		counts[off] = max(counts[off], frags[i].Fragment+1)
	}
	if r.err != nil {
		return nil, 0, r.err
	}

	layout, err := NewLayout(region, counts)
	if err != nil {
		return nil, 0, err
	}
	f, err := NewCellFAB(layout, region, nComp)
	if err != nil {
		return nil, 0, err
	}
	if len(f.irreg) != m {
		return nil, 0, fmt.Errorf("ebcell: %d serialized fragments, layout has %d", m, len(f.irreg))
	}
	for i, vi := range f.irreg {
		if vi != frags[i] {
			return nil, 0, fmt.Errorf("ebcell: fragment %d is %v, expected %v", i, frags[i], vi)
		}
	}
	f.dense = dense
	f.sparse = values
	return f, r.pos, nil
}

// CopyFromMemFull overwrites f from a full serialization, which must
// describe the same region, component count and fragments
func (f *CellFAB) CopyFromMemFull(buf []byte) (int, error) {
	src, n, err := decodeFull(buf)
	if err != nil {
		return 0, err
	}
	if len(src.irreg) != len(f.irreg) {
		return 0, fmt.Errorf("%w: %d serialized fragments, %d held",
			ErrRegionMismatch, len(src.irreg), len(f.irreg))
	}
	for i := range f.irreg {
		if src.irreg[i] != f.irreg[i] {
			return 0, fmt.Errorf("%w: fragment %v, expected %v",
				ErrRegionMismatch, src.irreg[i], f.irreg[i])
		}
	}
	if err := f.Copy(src); err != nil {
		return 0, err
	}
	return n, nil
}

// UnmarshalCellFAB decodes a full serialization into a new CellFAB. The
// stream carries only multi-valued fragments, so cells that were covered
// come back as regular cells holding their dense values.
func UnmarshalCellFAB(buf []byte) (*CellFAB, error) {
	f, n, err := decodeFull(buf)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, fmt.Errorf("ebcell: %d trailing bytes", len(buf)-n)
	}
	return f, nil
}

// MarshalBinary implements encoding.BinaryMarshaler with the full
// serialization
func (f *CellFAB) MarshalBinary() ([]byte, error) {
	return f.appendFull(make([]byte, 0, f.NBytesFull())), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// layout, region and values of f.
func (f *CellFAB) UnmarshalBinary(data []byte) error {
	src, err := UnmarshalCellFAB(data)
	if err != nil {
		return err
	}
	f.layout = src.layout
	f.region = src.region
	f.nComp = src.nComp
	f.dense = src.dense
	f.irreg = src.irreg
	f.irregIndex = src.irregIndex
	f.sparse = src.sparse
	return nil
}
