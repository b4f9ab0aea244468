// Package gui opens a desktop window running the particle network. The
// default backend is raylib; building with the ebiten tag swaps in
// Ebitengine. Both link GLFW, so only one can be compiled in.
package gui
