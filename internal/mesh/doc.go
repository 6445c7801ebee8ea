// Package mesh builds the airfoil mesh topology: it resamples surface
// coordinates, closes the leading edge, discretizes the farfield, estimates
// the first-cell wall spacing and assembles a numbered, validated topology.
//
// Everything here is pure; reading coordinates and writing scripts lives in
// infra adapters.
package mesh
