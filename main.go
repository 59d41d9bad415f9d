package main

import "github.com/devicelab-dev/reportview/pkg/cli"

func main() {
	cli.Execute()
}
