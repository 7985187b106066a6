// Package formats reads model files into host meshes.
package formats
