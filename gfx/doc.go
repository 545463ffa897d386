// Package gfx is the small software 3D engine the orbitlight scenes render with.
//
// It covers vector, quaternion and transform math, procedural meshes, and a fixed
// pipeline rasterizer:
//
//	Frame → Transform → Projection → Clipping → Rasterization → Target.
//
// The renderer draws into a caller-provided Target and reuses its depth buffer
// between frames. All math is float32.
package gfx
