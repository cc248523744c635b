package main

import "github.com/Dhoini/olio-backoffice/internal/cli"

func main() {
	cli.Execute()
}
