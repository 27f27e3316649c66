// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of redhorsegen.
const Current = "0.1.0"
