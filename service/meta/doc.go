// Package meta pre-processes configuration text before it is decoded.
package meta
