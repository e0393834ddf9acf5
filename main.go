package main

import "github.com/tommyzliu/tilewm/cmd"

func main() {
	cmd.Execute()
}
