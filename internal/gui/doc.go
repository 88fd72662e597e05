// Package gui is the raylib window front end. Left click places the
// pending ball, arrows change its velocity, W/S its mass and Enter confirms
// it; once both balls are in, the world runs until R resets it. Resizing
// the window resizes the world.
package gui
