//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "mwlookup"
	mainPath   = "./cmd/mwlookup"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the mwlookup binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, mainPath)
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install builds and copies the binary to $GOPATH/bin
func Install() error {
	mg.Deps(Build)

	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	dest := filepath.Join(gopath, "bin", binaryName)
	fmt.Println("Installing to", dest)
	return sh.Copy(dest, binaryName)
}

// Clean removes build artifacts and the downloaded pronunciation
func Clean() error {
	for _, path := range []string{binaryName, "word_to_pronounce.mp3"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}
