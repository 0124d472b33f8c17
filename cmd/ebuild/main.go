package main

import "github.com/ldalzotto/EngineCPPRewrite/cmd/ebuild/internal"

func main() {
	internal.Execute()
}
