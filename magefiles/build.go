// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main holds the mage targets for bce.
//
//	mage build             compile bin/bce
//	mage install           copy bin/bce to GOPATH/bin
//	mage clean             remove build artifacts
//	mage lint              run golangci-lint
//	mage test:all          run unit and integration tests
//	mage test:unit         run unit tests only
//	mage test:integration  build, then run tests/
//	mage test:cover        write coverage.out for unit tests
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "bce"
	binaryDir  = "bin"
	cmdDir     = "./cmd/bce"
	modulePath = "github.com/mesh-intelligence/bce"
)

// Build compiles bin/bce with the git revision stamped in.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v",
		"-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// ldflags sets main.Version and main.Commit from git when available.
func ldflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return stampFlags(version, commit)
}

// stampFlags keeps the binary's own defaults, "dev" and "unknown", for any
// value git could not provide.
func stampFlags(version, commit string) string {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("-X main.Version=%s -X main.Commit=%s", version, commit)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
