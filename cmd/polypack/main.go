// PolyPack: polyomino packing feasibility checker.
//
// Reads a puzzle of polyomino shapes and grid queries and prints how many
// queries can be packed.
//
// Build:
//   go build -o polypack ./cmd/polypack
//
// Usage:
//   polypack solve puzzle.txt
//   polypack solve --format summary --workers 4 puzzle.txt
//   polypack compare puzzle.txt

package main

import "github.com/piwi3910/PolyPack/internal/cli"

func main() {
	cli.Execute()
}
