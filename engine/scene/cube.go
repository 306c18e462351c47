package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
)

// CubeVertexCount is the number of vertices in the unit cube: six faces of two triangles.
const CubeVertexCount = 36

// cubeFace lists the four corners of a face counter-clockwise seen from outside,
// starting at the corner mapped to uv (0, 0).
type cubeFace struct {
	normal  [3]float32
	corners [4][3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{0, 0, -1}, corners: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{normal: [3]float32{0, 0, 1}, corners: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{normal: [3]float32{-1, 0, 0}, corners: [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{normal: [3]float32{1, 0, 0}, corners: [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{normal: [3]float32{0, -1, 0}, corners: [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	{normal: [3]float32{0, 1, 0}, corners: [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
}

var cornerUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CubeVertices returns the 36 vertices of a unit cube centred on the origin with
// outward normals and a full texture on every face.
func CubeVertices() []GPUVertex {
	out := make([]GPUVertex, 0, CubeVertexCount)
	for _, f := range cubeFaces {
		for _, c := range [6]int{0, 1, 2, 2, 3, 0} {
			out = append(out, GPUVertex{Position: f.corners[c], Normal: f.normal, TexCoord: cornerUVs[c]})
		}
	}
	return out
}

// NewCubeMesh uploads the unit cube as a non-indexed vertex buffer.
//
// Parameters:
//   - backend: the GPU backend
//
// Returns:
//   - gpu.Handle: the mesh handle, owned by the caller
//   - error: error if the upload fails
func NewCubeMesh(backend gpu.Backend) (gpu.Handle, error) {
	h, err := backend.CreateVertexBuffer("cube", MarshalVertices(CubeVertices()), CubeVertexCount, nil)
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to create cube mesh: %w", err)
	}
	return h, nil
}
