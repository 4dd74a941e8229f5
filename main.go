package main

import "github.com/niraj8/startup-runway-estimator/cmd"

func main() {
	cmd.Execute()
}
