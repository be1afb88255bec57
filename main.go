package main

import "github.com/shoplane-dev/storefront-api/cmd"

func main() {
	cmd.Execute()
}
