package domain

// Config represents the aerogrid configuration loaded from aerogrid.yaml.
type Config struct {
	Mesh        MeshConfig
	Correlation Correlation
	Sweep       SweepConfig
	Paths       PathsConfig
}

// MeshConfig parameterizes one mesh generation.
type MeshConfig struct {
	Points          int     // resampled points per surface
	Reynolds        float64 // freestream Reynolds number
	YPlus           float64 // target first-cell y+
	Mach            float64
	ReferenceLength float64
	GrowthRate      float64 // boundary-layer geometric ratio
	BLThickness     float64 // total boundary-layer thickness
	FarfieldRadius  float64
	FarfieldPoints  int
	PointMeshSize   float64 // characteristic length attached to every point
	MeshSizeFactor  float64
	UpperSuffix     string // replaced by ".geo" to name the script
	LowerSuffix     string
}

// Correlation holds the empirical constants of the flat-plate wall spacing
// estimate. KinematicViscosity == 0 derives ν from the Reynolds number.
type Correlation struct {
	SkinFrictionCoefficient float64
	SkinFrictionExponent    float64
	SpeedOfSound            float64
	Density                 float64
	KinematicViscosity      float64
}

// SweepConfig drives the angle-of-attack sweep.
type SweepConfig struct {
	CaseFile   string
	ForcesFile string
	AoA        AoARange
	Procs      int
	Launcher   string // e.g. mpiexec; empty runs the solver directly
	Solver     string
	Metrics    bool
}

// AoARange is an inclusive linear range of angles in degrees.
type AoARange struct {
	Start float64
	Stop  float64
	Count int
}

type PathsConfig struct {
	AirfoilsDir string
	RunsDir     string
}

// DefaultCorrelation returns the flat-plate constants used by default.
func DefaultCorrelation() Correlation {
	return Correlation{
		SkinFrictionCoefficient: 0.026,
		SkinFrictionExponent:    1.0 / 7.0,
		SpeedOfSound:            340,
		Density:                 1.225,
		KinematicViscosity:      1.5e-5,
	}
}

// DefaultConfig provides sane defaults if aerogrid.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Mesh: MeshConfig{
			Points:          80,
			Reynolds:        2.8e6,
			YPlus:           1,
			Mach:            0.78,
			ReferenceLength: 1,
			GrowthRate:      1.2,
			BLThickness:     0.08,
			FarfieldRadius:  230,
			FarfieldPoints:  100,
			PointMeshSize:   1,
			MeshSizeFactor:  100,
			UpperSuffix:     "U.csv",
			LowerSuffix:     "D.csv",
		},
		Correlation: DefaultCorrelation(),
		Sweep: SweepConfig{
			CaseFile:   "turb.cfg",
			ForcesFile: "forces_breakdown.dat",
			AoA:        AoARange{Start: -4, Stop: 4, Count: 9},
			Procs:      8,
			Launcher:   "mpiexec",
			Solver:     "SU2_CFD",
			Metrics:    true,
		},
		Paths: PathsConfig{
			AirfoilsDir: "airfoils",
			RunsDir:     "runs",
		},
	}
}
