// Package sph implements the module factory that binds (SPH variant,
// role) pairs to concrete implementations, plus the fork-join parallel-for
// helper and the interrupt-signal latch shared by every pass.
package sph

import (
	"github.com/cpmech/gosl/chk"
)

// SPHType names one of the supported fluid discretizations.
type SPHType string

const (
	SSPH   SPHType = "SSPH"
	DISPH  SPHType = "DISPH"
	GSPH   SPHType = "GSPH"
	GDISPH SPHType = "GDISPH"
)

// Role names a pipeline stage a module factory entry can implement.
type Role string

const (
	RolePreInteraction Role = "pre-interaction"
	RoleFluidForce     Role = "fluid-force"
	RoleGravity        Role = "gravity"
	RoleTimestep       Role = "timestep"
	RoleHeatingCooling Role = "heating-cooling"
	RoleRelaxation     Role = "relaxation"
)

// Module is the capability every registered implementation must satisfy;
// concrete per-role interfaces (preinteraction.Model, fluidforce.Model,
// ...) embed this shape, so a single allocator-returned value of type Module
// can be asserted to the richer, role-specific interface by the caller.
type Module interface{}

// Allocator constructs a Module for a given variant.
type Allocator func() Module

type key struct {
	variant SPHType
	role    Role
}

var allocators = map[key]Allocator{}

// Register adds a constructor to the factory. Called from init() in each
// mdl/* package, mirroring ele.SetAllocator / msolid's allocators map
// population.
func Register(variant SPHType, role Role, fn Allocator) {
	k := key{variant, role}
	if _, ok := allocators[k]; ok {
		chk.Panic("sph: allocator for {variant=%q, role=%q} already registered", variant, role)
	}
	allocators[k] = fn
}

// Get returns the constructor bound to (variant, role). Unknown
// combinations are a fatal configuration error.
func Get(variant SPHType, role Role) (Allocator, error) {
	fn, ok := allocators[key{variant, role}]
	if !ok {
		return nil, chk.Err("sph: cannot get allocator for {variant=%q, role=%q}: unknown combination", variant, role)
	}
	return fn, nil
}
