// Package gnmyco catalogs and downloads fungal genome assemblies and gene
// models from the JGI MycoCosm portal.
package gnmyco

var (
	// Version of gnmyco, set during the build.
	Version = "v0.1.0"
	// Build timestamp, set during the build.
	Build = "n/a"
)
