// Command spicefig produces publication SVG figures and tables from
// circuit simulator WRDATA files and logs.
package main

import "github.com/cwbudde/algo-spice/cmd/spicefig/cmd"

func main() {
	cmd.Execute()
}
