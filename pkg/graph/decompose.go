// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import (
	"fmt"
	"time"
)

// Segment is a candidate entity produced by a segmentation strategy:
// a classification plus a half-open byte range into the text being
// decomposed. Offsets are relative to the start of that text.
type Segment struct {
	EntityType string
	StartByte  int64
	EndByte    int64
}

// Decompose validates a candidate segmentation of text and returns the
// resulting entity records. Segments must arrive in ascending
// StartByte order, must not overlap, and each range must fall inside
// [0, len(text)); any violation fails with ErrRangeViolation. Order is
// the 0-based rank in that ascending sequence. Callers with unordered
// candidates sort them before validation; the decomposer itself never
// reorders.
//
// The returned records carry the exact substring for each range and a
// shared extraction timestamp.
func Decompose(text string, segments []Segment, extractedAt time.Time) ([]EntityProps, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	limit := int64(len(text))
	out := make([]EntityProps, 0, len(segments))
	for i, seg := range segments {
		if seg.StartByte < 0 || seg.EndByte < seg.StartByte || seg.EndByte > limit {
			return nil, fmt.Errorf("%w: segment %q [%d, %d) outside [0, %d)",
				ErrRangeViolation, seg.EntityType, seg.StartByte, seg.EndByte, limit)
		}
		if i > 0 && seg.StartByte < segments[i-1].StartByte {
			return nil, fmt.Errorf("%w: segment %q [%d, %d) out of order after [%d, %d)",
				ErrRangeViolation, seg.EntityType, seg.StartByte, seg.EndByte,
				segments[i-1].StartByte, segments[i-1].EndByte)
		}
		if i > 0 && seg.StartByte < segments[i-1].EndByte {
			return nil, fmt.Errorf("%w: segment %q [%d, %d) overlaps [%d, %d)",
				ErrRangeViolation, seg.EntityType, seg.StartByte, seg.EndByte,
				segments[i-1].StartByte, segments[i-1].EndByte)
		}
		props := EntityProps{
			EntityType:  seg.EntityType,
			StartByte:   seg.StartByte,
			EndByte:     seg.EndByte,
			Order:       int64(i),
			Text:        text[seg.StartByte:seg.EndByte],
			ExtractedAt: extractedAt,
		}
		if err := props.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRangeViolation, err)
		}
		out = append(out, props)
	}
	return out, nil
}

// DecomposeChild validates a segmentation of a parent entity's covered
// range. Segment offsets are relative to the parent's text (the
// substring for [parent.StartByte, parent.EndByte)), so children stay
// nested inside the parent once the ranges pass Decompose.
func DecomposeChild(parent EntityProps, segments []Segment) ([]EntityProps, error) {
	return Decompose(parent.Text, segments, parent.ExtractedAt)
}
