// Package surface defines the 2-D drawing backend the simulation renders into
// and the manager that keeps its pixel dimensions in sync with the viewport.
//
// A backend only needs a handful of primitives:
//
//   - [Surface.Clear]: wipe the whole drawable area
//   - [Surface.FillCircle]: filled disc in a solid color
//   - [Surface.StrokeLine]: line with color, alpha and width
//   - [Surface.Size] / [Surface.Resize]: mutable pixel dimensions
//
// Concrete backends live in their host packages (raster, export, viz, gui).
// [CommandList] is an in-memory backend that records draw calls; it backs the
// websocket bridge and most tests.
package surface
