// Command placesctl inspects places fixtures without a terminal UI and
// drives a running placestree instance.
package main

import "github.com/pstuifzand/placestree/cmd/placesctl/cmd"

func main() {
	cmd.Execute()
}
