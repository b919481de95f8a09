package cellgeom

// CountFragments estimates the number of disjoint volume fragments of the
// cell: the connected components of its non-Out vertices, joined along
// cell edges. A covered cell has none, a regular cell one.
func (r *Record) CountFragments() int {
	numVertices := 1 << r.Dim
	parent := make([]int, numVertices)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	inside := func(label int) bool {
		return r.CornerSigns[vertexLabel(label, r.Dim)] != Out
	}

	for label := 0; label < numVertices; label++ {
		if !inside(label) {
			continue
		}
		for dir := 0; dir < r.Dim; dir++ {
			nbr := label | 1<<dir
			if nbr == label || !inside(nbr) {
				continue
			}
			parent[find(label)] = find(nbr)
		}
	}

	count := 0
	for label := 0; label < numVertices; label++ {
		if inside(label) && find(label) == label {
			count++
		}
	}
	return count
}
