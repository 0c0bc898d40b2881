package voxray

const (
	MaxDepth      = 10    // maximum recursion depth of Trace
	Epsilon       = 1e-4  // self-intersection offset for scattered and shadow rays
	LengthInf     = 1e34  // "no hit" ray length
	missThreshold = 1e33  // cube entry above this counts as a miss
	DDANudge      = 5e-5  // step past the cube entry before computing the first cell
	VoxelAmount   = 16    // default grid side, must be a power of two
	SoftShadow    = 0.7   // default shadow ray jitter
	SkyScale      = 0.65  // sky dome brightness multiplier
	NoVoxel       = -1    // FindNearest / HitVoxelIndex miss
	Width         = 1280  // default output width
	Height        = 720   // default output height
	Frames        = 8     // default accumulated frames
	Gamma         = 2.0   // default output gamma
	FocalLength   = 2.3   // default depth-of-field focal distance
	PNGOut        = "out/frame.png"
	GIFDelay      = 20 // 100ths of a second per GIF frame
	SkyMaxWidth   = 2048
	EstimateRays  = 20_000
)
