// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// ROUNDS defines the length of each iterated match.
const ROUNDS = 1000

// GENERATIONS defines how many generations a run advances by default.
const GENERATIONS = 30

// ROWS and COLS define the default board size.
const ROWS = 10
const COLS = 50
