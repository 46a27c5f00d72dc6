package render

// FrameStats counts work done between buffer clears. All counters reset on
// ClearBuffers and are meant to be read once per frame.
type FrameStats struct {
	TrianglesDrawn   int // Triangles that survived clipping and culling
	TrianglesCulled  int // Back-facing or entirely behind the near plane
	TrianglesClipped int // Input triangles that crossed the near plane
	PixelsDrawn      int // Pixels that passed the depth test and were shaded
}
