// domcol - dominant colour extraction
//
// domcol finds the dominant colours of an image with k-means clustering or
// mean-shift mode seeking.
package main

import "github.com/jmylchreest/domcol/internal/cli"

func main() {
	cli.Execute()
}
