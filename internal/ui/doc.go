// Package ui implements the terminal watch screen for lancast.
//
// The watch screen is a read-only live view over the discovery engine: it
// polls the registry once a second and renders the current device table,
// with a spinner while the network is still quiet. Discovery itself runs
// in the background independent of the UI refresh.
package ui
