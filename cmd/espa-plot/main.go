// Command espa-plot generates per-sensor tables and trend charts from an
// order's band statistics.
package main

import "github.com/najamsyed/ESPA/cmd"

func main() {
	cmd.Execute()
}
