// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command plantdump parses a PlantModel binary and prints a summary
// of the groups and primitives it contains, grounded on the teacher's
// pedumper CLI shape.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kcad/plantmodel/container"
)

var (
	objectName  string
	forceColor  int32
	scale       float32
	noAttrs     bool
	jsonSummary bool
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(filename string) {
	log.Printf("processing %s", filename)

	opts := container.DefaultOptions()
	opts.ObjectName = objectName
	if forceColor >= 0 {
		opts.ForcedColor = forceColor
	}
	if scale != 0 {
		opts.Scale = scale
	}
	opts.IgnoreAttributes = noAttrs

	sink := newStatsSink()
	if err := container.ReadFile(filename, sink, opts); err != nil {
		log.Printf("error parsing %s: %v", filename, err)
		return
	}

	if jsonSummary {
		buf, _ := json.MarshalIndent(sink.summary(), "", "\t")
		fmt.Println(string(buf))
		return
	}
	sink.print(filename)
}

func dump(cmd *cobra.Command, args []string) {
	filePath := args[0]

	if !isDirectory(filePath) {
		dumpOne(filePath)
		return
	}

	filepath.Walk(filePath, func(path string, f os.FileInfo, err error) error {
		if err == nil && !f.IsDir() {
			dumpOne(path)
		}
		return nil
	})
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "plantdump",
		Short: "A PlantModel binary parser",
		Long:  "Parses PlantModel binaries and reports the group/primitive tree they contain",
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps a file or a directory of files",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd.Flags().StringVarP(&objectName, "object", "o", "", "restrict the dump to the sub-tree rooted at this group name")
	dumpCmd.Flags().Int32VarP(&forceColor, "force-color", "", -1, "override every group's reported material id")
	dumpCmd.Flags().Float32VarP(&scale, "scale", "s", 0, "override the matrix basis scale applied to every primitive")
	dumpCmd.Flags().BoolVarP(&noAttrs, "no-attrs", "", false, "skip the attribute side-car file even if one exists")
	dumpCmd.Flags().BoolVarP(&jsonSummary, "json", "j", false, "print the summary as JSON instead of plain-text counts (the tree is printed either way)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
