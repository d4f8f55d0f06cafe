// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import (
	"bytes"

	"github.com/kcad/plantmodel/event"
	"github.com/kcad/plantmodel/internal/linear"
)

// ReadFiles streams multiple PlantModel binaries into a single
// synthetic document named docName: one startDocument/startHeader/
// startModel bracketing the whole run, and one group per input file,
// named after the file sans extension (spec.md 4.2, "Aggregation").
// Only the outer bracketing differs from single-file mode — each
// file's own HEAD/MODL bodies are still decoded and discarded for
// their header/model fields.
func ReadFiles(names []string, docName string, sink event.Sink, opts Options) error {
	sink.StartDocument()
	sink.StartHeader("PMUC Aggregation", "Aggregation file", "", "", "UTF-8")
	sink.EndHeader()
	sink.StartModel(docName, "Aggregation")

	for _, name := range names {
		if err := readAggregatedFile(name, sink, opts); err != nil {
			sink.EndModel()
			sink.EndDocument()
			return err
		}
	}

	sink.EndModel()
	sink.EndDocument()
	return nil
}

func readAggregatedFile(name string, sink event.Sink, opts Options) error {
	file, err := OpenFile(name, opts)
	if err != nil {
		return err
	}
	defer file.Close()

	sink.StartGroup(baseName(name), linear.Vector3{}, 0)

	parser := NewParser(bytes.NewReader(file.data), sink, opts, file.attr)
	parser.aggregation = true
	file.parser = parser
	if err := parser.Run(); err != nil {
		return err
	}
	sink.EndGroup()
	return nil
}
