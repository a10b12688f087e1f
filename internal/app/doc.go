// Package app wires the sample's dependencies.
//
// It builds the analytics configuration from the fixed sample values, the
// optional config file and the build-time write key and data-plane URL, then
// constructs the one analytics client the process uses together with the
// Sprig factory the screen registers with.
package app
