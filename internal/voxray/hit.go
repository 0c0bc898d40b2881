package voxray

// HitInfo is filled fresh by every traversal call.
type HitInfo struct {
	Point        Vec3
	Normal       Vec3 // always faces against Direction
	Direction    Vec3 // incoming ray direction
	Color        Color
	SpecialColor Color
	Material     Material
	FrontFace    bool
	Special      bool
}

// SetFaceNormal records outward (unit) as the normal, flipped when the ray comes from inside.
func (h *HitInfo) SetFaceNormal(dir, outward Vec3) {
	h.FrontFace = dir.Dot(outward) < 0
	if h.FrontFace {
		h.Normal = outward
	} else {
		h.Normal = outward.Mul(-1)
	}
}
