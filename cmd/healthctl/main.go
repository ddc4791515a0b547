package main

import "github.com/yanqian/healthdash/cmd/healthctl/root"

func main() {
	root.Execute()
}
