package config

// YAMLProject mirrors aerogrid.yaml. Pointer fields distinguish "absent"
// (keep the default) from an explicit zero.
type YAMLProject struct {
	Aerogrid struct {
		Mesh        YAMLMesh        `yaml:"mesh"`
		Correlation YAMLCorrelation `yaml:"correlation"`
		Sweep       YAMLSweep       `yaml:"sweep"`
		Paths       YAMLPaths       `yaml:"paths"`
	} `yaml:"aerogrid"`
}

type YAMLMesh struct {
	Points          *int     `yaml:"points"`
	Reynolds        *float64 `yaml:"reynolds"`
	YPlus           *float64 `yaml:"y_plus"`
	Mach            *float64 `yaml:"mach"`
	ReferenceLength *float64 `yaml:"reference_length"`
	GrowthRate      *float64 `yaml:"growth_rate"`
	BLThickness     *float64 `yaml:"bl_thickness"`
	FarfieldRadius  *float64 `yaml:"farfield_radius"`
	FarfieldPoints  *int     `yaml:"farfield_points"`
	PointMeshSize   *float64 `yaml:"point_mesh_size"`
	MeshSizeFactor  *float64 `yaml:"mesh_size_factor"`
	UpperSuffix     string   `yaml:"upper_suffix"`
	LowerSuffix     string   `yaml:"lower_suffix"`
}

type YAMLCorrelation struct {
	SkinFrictionCoefficient *float64 `yaml:"skin_friction_coefficient"`
	SkinFrictionExponent    *float64 `yaml:"skin_friction_exponent"`
	SpeedOfSound            *float64 `yaml:"speed_of_sound"`
	Density                 *float64 `yaml:"density"`
	KinematicViscosity      *float64 `yaml:"kinematic_viscosity"`
}

type YAMLSweep struct {
	CaseFile   string       `yaml:"case_file"`
	ForcesFile string       `yaml:"forces_file"`
	AoA        YAMLAoARange `yaml:"aoa"`
	Procs      *int         `yaml:"procs"`
	Launcher   *string      `yaml:"launcher"`
	Solver     string       `yaml:"solver"`
	Metrics    *bool        `yaml:"metrics"`
}

type YAMLAoARange struct {
	Start *float64 `yaml:"start"`
	Stop  *float64 `yaml:"stop"`
	Count *int     `yaml:"count"`
}

type YAMLPaths struct {
	AirfoilsDir string `yaml:"airfoils_dir"`
	RunsDir     string `yaml:"runs_dir"`
}
