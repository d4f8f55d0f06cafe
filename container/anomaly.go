// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

// Anomalies recorded on a Parser (spec.md 7): oddities worth flagging
// that never abort a parse, the same role the teacher's Anomalies
// slice plays for non-fatal PE quirks.
const (
	// AnoUnknownEncoding is recorded when a HEAD body declares an
	// encoding label this module doesn't recognise; the string is
	// decoded as raw UTF-8 instead of being transcoded.
	AnoUnknownEncoding = "unrecognised header encoding label, treated as UTF-8"

	// AnoForcedColorOverride is recorded once, the first time a group's
	// reported material id is replaced by Options.ForcedColor.
	AnoForcedColorOverride = "forced color override in effect"

	// AnoAttributeBlockMissing is recorded when a group has no matching
	// NEW block in the attribute side-car, which the lock-step reader
	// treats as "no metadata for this group" rather than an error.
	AnoAttributeBlockMissing = "no attribute block found for group"
)
