// Package clock holds the engine's time source so tests can substitute it.
package clock
