package main

import "github.com/tickstream-hq/tardis-harvester/internal/cli"

func main() {
	cli.Execute()
}
