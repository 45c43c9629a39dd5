package main

import "github.com/ivlev/alive2json/cmd/alive2json/cmd"

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.Execute(version)
}
