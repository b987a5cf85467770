package nurbs

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// geomHash accumulates an FNV-1a content hash over geometry fields. Two
// values with identical degree, control points, and knots hash identically,
// so the fingerprint works as an external re-tessellation key.
type geomHash struct {
	h   hash.Hash64
	buf [8]byte
}

func newGeomHash() *geomHash {
	return &geomHash{h: fnv.New64a()}
}

func (g *geomHash) writeInt(n int) {
	binary.LittleEndian.PutUint64(g.buf[:], uint64(n))
	g.h.Write(g.buf[:])
}

func (g *geomHash) writeFloat(f float64) {
	binary.LittleEndian.PutUint64(g.buf[:], math.Float64bits(f))
	g.h.Write(g.buf[:])
}

func (g *geomHash) writeFloats(fs []float64) {
	for _, f := range fs {
		g.writeFloat(f)
	}
}

func (g *geomHash) writePoint(cp ControlPoint) {
	g.writeFloat(cp.Pos.X)
	g.writeFloat(cp.Pos.Y)
	g.writeFloat(cp.Pos.Z)
	g.writeFloat(cp.W)
}

func (g *geomHash) sum() uint64 {
	return g.h.Sum64()
}
