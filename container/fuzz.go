// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import "github.com/kcad/plantmodel/event"

// Fuzz feeds arbitrary bytes through ReadBuffer with a no-op sink,
// following the teacher's go-fuzz convention (fuzz.go).
func Fuzz(data []byte) int {
	if err := ReadBuffer(data, event.NopSink{}, DefaultOptions()); err != nil {
		return 0
	}
	return 1
}
