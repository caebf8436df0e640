// Copyright © 2019 One Concern

package main

import "github.com/oneconcern/filemon/cmd/filemon/cmd"

func main() {
	cmd.Execute()
}
