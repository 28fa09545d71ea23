package main

import "github.com/ardanlabs/minerace/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
