package main

import "nuscenes-devkit/cmd"

func main() {
	cmd.Execute()
}
