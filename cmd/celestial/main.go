package main

import "github.com/chrishayuk/chuk-mcp-celestial/adapter/cli"

func main() {
	cli.Execute()
}
