package main

import "github.com/PolarWolf314/sealedconf/cmd"

func main() {
	cmd.Execute()
}
