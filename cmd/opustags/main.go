// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Command opustags edits the metadata of an Ogg Opus file.
package main

import (
	"github.com/akx/opustags/cli"
)

func main() {
	cli.Main()
}
