package voxray

var (
	Debug      = false // set to true for verbose debug output
	PNG        = true  // save the accumulated frame as PNG
	RAW        = false // save the accumulated frame as raw float64 RGB
	GIF        = false // save every accumulated frame as an animated GIF
	Stochastic = false // force single-light stochastic sampling regardless of config
	Estimate   = false // run the lighting estimator before rendering
	Workers    = 0     // render workers, 0 means runtime.NumCPU()

	// Compile time checks for the sealed sum types
	_ Material    = Diffuse{}
	_ Material    = Lambertian{}
	_ Material    = Mirror{}
	_ Material    = Glossy{}
	_ Material    = Dielectric{}
	_ Light       = (*PointLight)(nil)
	_ Light       = (*DirectionalLight)(nil)
	_ Light       = (*SpotLight)(nil)
	_ Light       = (*AreaLight)(nil)
	_ Environment = UniformSky{}
	_ Environment = GradientSky{}
	_ Environment = (*Skydome)(nil)
	_ Occluder    = (*Grid)(nil)
)
