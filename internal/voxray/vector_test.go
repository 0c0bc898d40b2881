package voxray

import (
	"math"
	"math/rand"
	"testing"
)

func almostEq(a, b Real) bool { return math.Abs(a-b) < 1e-9 }

func nearly(a, b, tol Real) bool { return math.Abs(a-b) <= tol }

func vecAlmostEq(a, b Vec3, tol Real) bool {
	return nearly(a[0], b[0], tol) && nearly(a[1], b[1], tol) && nearly(a[2], b[2], tol)
}

func TestNormZeroAndUnit(t *testing.T) {
	if got := norm(Vec3{}); got != (Vec3{}) {
		t.Fatalf("norm(0) = %+v", got)
	}
	if got := norm(Vec3{3, 0, 4}); !vecAlmostEq(got, Vec3{0.6, 0, 0.8}, 1e-12) {
		t.Fatalf("norm = %+v", got)
	}
}

func TestMulElemAndFract(t *testing.T) {
	if got := mulElem(Vec3{1, 2, 3}, Vec3{4, 0.5, -1}); got != (Vec3{4, 1, -3}) {
		t.Fatalf("mulElem = %+v", got)
	}
	if got := fract(Vec3{1.25, -0.25, 3}); !vecAlmostEq(got, Vec3{0.25, 0.75, 0}, 1e-12) {
		t.Fatalf("fract = %+v", got)
	}
}

func TestReflect(t *testing.T) {
	got := reflect(Vec3{1, -1, 0}, Vec3{0, 1, 0})
	if !vecAlmostEq(got, Vec3{1, 1, 0}, 1e-12) {
		t.Fatalf("reflect = %+v", got)
	}
}

func TestRefractNormalIncidenceIsStraight(t *testing.T) {
	got, ok := refract(Vec3{0, -1, 0}, Vec3{0, 1, 0}, 1/1.5)
	if !ok {
		t.Fatal("unexpected TIR")
	}
	if !vecAlmostEq(got, Vec3{0, -1, 0}, 1e-12) {
		t.Fatalf("refract = %+v", got)
	}
}

func TestRefractTIR(t *testing.T) {
	I := norm(Vec3{1, -0.1, 0})
	if _, ok := refract(I, Vec3{0, 1, 0}, 1.5); ok {
		t.Fatal("expected total internal reflection at grazing angle leaving glass")
	}
}

func TestRefractUnitAndSnell(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	N := Vec3{0, 1, 0}
	eta := 1 / 1.33
	for i := 0; i < 500; i++ {
		I := norm(Vec3{RandomRange(rng, -1, 1), -rng.Float64() - 0.01, RandomRange(rng, -1, 1)})
		T, ok := refract(I, N, eta)
		if !ok {
			t.Fatalf("unexpected TIR entering denser medium: I=%+v", I)
		}
		if !nearly(T.Len(), 1, 1e-9) {
			t.Fatalf("refracted not unit: %.12g", T.Len())
		}
		sinI := math.Sqrt(1 - I[1]*I[1])
		sinT := math.Sqrt(1 - T[1]*T[1])
		if !nearly(sinT, eta*sinI, 1e-9) {
			t.Fatalf("Snell violated: sinT=%.12g eta*sinI=%.12g", sinT, eta*sinI)
		}
	}
}

func TestSchlick(t *testing.T) {
	if got := schlick(1, 1/1.5); !nearly(got, 0.04, 1e-12) {
		t.Fatalf("schlick at normal incidence = %.12g", got)
	}
	if got := schlick(0, 1/1.5); !almostEq(got, 1) {
		t.Fatalf("schlick at grazing = %.12g", got)
	}
}
