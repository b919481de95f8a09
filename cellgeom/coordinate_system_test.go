package cellgeom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/EBGeometry/utils"
)

func TestCoordinateSystem(t *testing.T) {
	global := NewCoordinateSystem(3, utils.RealVect{1, 2, 3}, utils.RealVect{0.1, 0.2, 0.3})
	center := NewCoordinateSystem(3, utils.RealVect{}, utils.RealVect{0.1, 0.2, 0.3})

	p := utils.RealVect{0.5, -0.25, 0}
	assert.Equal(t, utils.RealVect{1.5, 1.75, 3}, global.Convert(p, center))
	assert.Equal(t, 2.5, global.ConvertDir(0.5, center, 1))

	r := global.Reduce(1)
	assert.Equal(t, 2, r.Dim)
	assert.Equal(t, utils.RealVect{1, 3, 0}, r.Origin)
	assert.Equal(t, utils.RealVect{0.1, 0.3, 0}, r.Dx)

	assert.Panics(t, func() { NewCoordinateSystem(0, utils.RealVect{}, utils.RealVect{}) })
}

func TestEdgeIndex(t *testing.T) {
	e := EdgeIndex{Dir: 1, Pos: utils.IntVect{1, 0}}
	assert.Equal(t, Vertex{1, 0, 0}, e.LoVertex(3))
	assert.Equal(t, Vertex{1, 1, 0}, e.HiVertex(3))

	in := Intersections{
		{Dir: 1, Pos: utils.IntVect{1}}: 0,
		{Dir: 0, Pos: utils.IntVect{1}}: 0,
		{Dir: 1, Pos: utils.IntVect{0}}: 0,
		{Dir: 0, Pos: utils.IntVect{0}}: 0,
	}
	assert.Equal(t, []EdgeIndex{
		{Dir: 0, Pos: utils.IntVect{0}},
		{Dir: 0, Pos: utils.IntVect{1}},
		{Dir: 1, Pos: utils.IntVect{0}},
		{Dir: 1, Pos: utils.IntVect{1}},
	}, in.SortedEdges())

	assert.Equal(t, "IN", In.String())
	assert.Equal(t, "all-out", AllOut.String())
	assert.Equal(t, Vertex{1, 0, 1}, vertexLabel(5, 3))
}
