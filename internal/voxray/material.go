package voxray

import (
	"strings"

	"github.com/pkg/errors"
)

type MaterialKind uint8

const (
	KindDiffuse MaterialKind = iota
	KindLambertian
	KindMirror
	KindGlossy
	KindDielectric
)

var kindNames = [...]string{"diffuse", "lambertian", "mirror", "glossy", "dielectric"}

func (k MaterialKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Material is a closed set: only the types in this file implement it.
type Material interface {
	Kind() MaterialKind
	sealed()
}

// Diffuse surfaces are lit directly but never scatter.
type Diffuse struct{}

type Lambertian struct{}

type Mirror struct{}

// Glossy is a perturbed mirror; Fuzz scales the perturbation.
type Glossy struct {
	Fuzz Real
}

// Dielectric refracts with index of refraction IOR relative to air.
type Dielectric struct {
	IOR Real
}

func (Diffuse) Kind() MaterialKind    { return KindDiffuse }
func (Lambertian) Kind() MaterialKind { return KindLambertian }
func (Mirror) Kind() MaterialKind     { return KindMirror }
func (Glossy) Kind() MaterialKind     { return KindGlossy }
func (Dielectric) Kind() MaterialKind { return KindDielectric }

func (Diffuse) sealed()    {}
func (Lambertian) sealed() {}
func (Mirror) sealed()     {}
func (Glossy) sealed()     {}
func (Dielectric) sealed() {}

// NewMaterial builds a material from its name and parameter (fuzz or IOR).
func NewMaterial(name string, param Real) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diffuse":
		return Diffuse{}, nil
	case "lambertian", "lambert":
		return Lambertian{}, nil
	case "mirror":
		return Mirror{}, nil
	case "glossy":
		if param < 0 {
			return nil, errors.Errorf("glossy fuzz must be >= 0, got %g", param)
		}
		return Glossy{Fuzz: param}, nil
	case "dielectric", "glass":
		if param <= 0 {
			param = 1.5
		}
		return Dielectric{IOR: param}, nil
	}
	return nil, errors.Errorf("unknown material %q", name)
}
