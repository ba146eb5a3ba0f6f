// Package pacing runs delayed, keyed callbacks. The practice service uses it
// to advance a session automatically a short while after an outcome is
// recorded.
package pacing
