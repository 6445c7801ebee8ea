package config

import (
	"fmt"
	"strings"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
)

// MapConfig applies dto over domain.DefaultConfig and validates the result.
func MapConfig(path string, dto YAMLProject) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	y := dto.Aerogrid

	m := &cfg.Mesh
	setInt(&m.Points, y.Mesh.Points)
	setFloat(&m.Reynolds, y.Mesh.Reynolds)
	setFloat(&m.YPlus, y.Mesh.YPlus)
	setFloat(&m.Mach, y.Mesh.Mach)
	setFloat(&m.ReferenceLength, y.Mesh.ReferenceLength)
	setFloat(&m.GrowthRate, y.Mesh.GrowthRate)
	setFloat(&m.BLThickness, y.Mesh.BLThickness)
	setFloat(&m.FarfieldRadius, y.Mesh.FarfieldRadius)
	setInt(&m.FarfieldPoints, y.Mesh.FarfieldPoints)
	setFloat(&m.PointMeshSize, y.Mesh.PointMeshSize)
	setFloat(&m.MeshSizeFactor, y.Mesh.MeshSizeFactor)
	setString(&m.UpperSuffix, y.Mesh.UpperSuffix)
	setString(&m.LowerSuffix, y.Mesh.LowerSuffix)

	c := &cfg.Correlation
	setFloat(&c.SkinFrictionCoefficient, y.Correlation.SkinFrictionCoefficient)
	setFloat(&c.SkinFrictionExponent, y.Correlation.SkinFrictionExponent)
	setFloat(&c.SpeedOfSound, y.Correlation.SpeedOfSound)
	setFloat(&c.Density, y.Correlation.Density)
	setFloat(&c.KinematicViscosity, y.Correlation.KinematicViscosity)

	s := &cfg.Sweep
	setString(&s.CaseFile, y.Sweep.CaseFile)
	setString(&s.ForcesFile, y.Sweep.ForcesFile)
	setFloat(&s.AoA.Start, y.Sweep.AoA.Start)
	setFloat(&s.AoA.Stop, y.Sweep.AoA.Stop)
	setInt(&s.AoA.Count, y.Sweep.AoA.Count)
	setInt(&s.Procs, y.Sweep.Procs)
	if y.Sweep.Launcher != nil {
		s.Launcher = strings.TrimSpace(*y.Sweep.Launcher)
	}
	setString(&s.Solver, y.Sweep.Solver)
	if y.Sweep.Metrics != nil {
		s.Metrics = *y.Sweep.Metrics
	}

	setString(&cfg.Paths.AirfoilsDir, y.Paths.AirfoilsDir)
	setString(&cfg.Paths.RunsDir, y.Paths.RunsDir)

	if err := Validate(path, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field of cfg.
func Validate(path string, cfg domain.Config) error {
	checks := []struct {
		field string
		ok    bool
		msg   string
	}{
		{"mesh.points", cfg.Mesh.Points >= 4, "must be at least 4"},
		{"mesh.reynolds", cfg.Mesh.Reynolds > 0, "must be positive"},
		{"mesh.y_plus", cfg.Mesh.YPlus > 0, "must be positive"},
		{"mesh.mach", cfg.Mesh.Mach > 0, "must be positive"},
		{"mesh.reference_length", cfg.Mesh.ReferenceLength > 0, "must be positive"},
		{"mesh.growth_rate", cfg.Mesh.GrowthRate > 0, "must be positive"},
		{"mesh.bl_thickness", cfg.Mesh.BLThickness > 0, "must be positive"},
		{"mesh.farfield_radius", cfg.Mesh.FarfieldRadius > 0, "must be positive"},
		{"mesh.farfield_points", cfg.Mesh.FarfieldPoints >= 3, "must be at least 3"},
		{"mesh.point_mesh_size", cfg.Mesh.PointMeshSize > 0, "must be positive"},
		{"mesh.mesh_size_factor", cfg.Mesh.MeshSizeFactor > 0, "must be positive"},
		{"correlation.skin_friction_coefficient", cfg.Correlation.SkinFrictionCoefficient > 0, "must be positive"},
		{"correlation.speed_of_sound", cfg.Correlation.SpeedOfSound > 0, "must be positive"},
		{"correlation.density", cfg.Correlation.Density > 0, "must be positive"},
		{"correlation.kinematic_viscosity", cfg.Correlation.KinematicViscosity >= 0, "must not be negative"},
		{"sweep.aoa.count", cfg.Sweep.AoA.Count >= 1, "must be at least 1"},
		{"sweep.procs", cfg.Sweep.Procs >= 1, "must be at least 1"},
		{"sweep.solver", strings.TrimSpace(cfg.Sweep.Solver) != "", "is required"},
	}
	for _, c := range checks {
		if !c.ok {
			return invalidField(path, c.field, c.msg)
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
