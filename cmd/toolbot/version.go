package main

import (
	// Packages
	version "github.com/mutablelogic/go-toolcall/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	return printJSON(version.New(execName()))
}
