package voxray

import "math"

// reflect mirrors I about the plane with normal N (N unit).
func reflect(I, N Vec3) Vec3 {
	return I.Sub(N.Mul(2 * I.Dot(N)))
}

// refract bends unit I through the interface with unit normal N facing against I.
// eta is n1/n2 for the current crossing. Reports false on total internal reflection.
func refract(I, N Vec3, eta Real) (Vec3, bool) {
	cosi := N.Dot(I)
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Vec3{}, false
	}
	return I.Mul(eta).Sub(N.Mul(eta*cosi + math.Sqrt(k))), true
}

// schlick approximates Fresnel reflectance for the given cosine and refraction ratio.
func schlick(cosine, ratio Real) Real {
	r0 := (1 - ratio) / (1 + ratio)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
