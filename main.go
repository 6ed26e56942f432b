package main

import "github.com/dynstore/dsflat/cmd"

func main() {
	cmd.Execute()
}
