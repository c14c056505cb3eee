package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	table "github.com/mutablelogic/go-toolcall/pkg/ui/table"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// output writes v as indented JSON, or data as a table
func output(asJSON bool, v any, data table.TableData) error {
	if asJSON || data == nil {
		return printJSON(v)
	}
	return table.Write(os.Stdout, data)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(data))
	return err
}
