//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildReco)
	fmt.Println("Compilation finished")
	return nil
}

// BuildReco builds the hit reconstruction executable. HDF5 needs cgo, the
// CGO flags of the environment are forwarded.
func BuildReco() error {
	fmt.Println("Building reco executable...")
	return goCmd("build", "-o", "./bin/reco", "./reco")
}

// Test runs the unit tests of every package.
func Test() error {
	fmt.Println("Running tests...")
	return goCmd("test", "./...")
}

func goCmd(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", os.Getenv("CGO_LDFLAGS")),
		fmt.Sprintf("CGO_CFLAGS=%s", os.Getenv("CGO_CFLAGS")))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
