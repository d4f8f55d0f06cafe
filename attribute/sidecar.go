// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package attribute

import (
	"os"
	"path/filepath"
	"strings"
)

// sidecarExt is the conventional side-car extension, matched
// case-insensitively against candidates on disk (spec.md 6.2).
const sidecarExt = ".att"

// FindSideCar looks for <binaryPath-without-extension>.att next to
// binaryPath, trying the extension in a few common cases since the
// match is case-insensitive. It returns "" if none exists.
func FindSideCar(binaryPath string) string {
	base := strings.TrimSuffix(binaryPath, filepath.Ext(binaryPath))
	for _, ext := range []string{".att", ".ATT", ".Att"} {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	dir := filepath.Dir(binaryPath)
	wantBase := strings.ToLower(filepath.Base(base))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, sidecarExt) {
			continue
		}
		candidateBase := strings.ToLower(strings.TrimSuffix(name, ext))
		if candidateBase == wantBase {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// Open locates and decodes the side-car file for binaryPath. ok is
// false when no side-car exists; this is never an error for the
// caller (spec.md 7: "The attribute reader never fails the parse").
func Open(binaryPath string) (reader *Reader, ok bool) {
	path := FindSideCar(binaryPath)
	if path == "" {
		return nil, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return New(raw), true
}
