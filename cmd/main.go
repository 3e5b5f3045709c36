package main

import "github.com/canopy-network/omnichain/cmd/cli"

func main() {
	cli.Execute()
}
