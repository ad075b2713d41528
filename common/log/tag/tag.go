// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package tag defines the structured fields attachable to a log line.
package tag

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Tag is the interface for the logging system. The zap.Field is kept private
// so that call sites always go through the typed constructors below.
type Tag struct {
	field zap.Field
}

// Field exposes the underlying zap.Field for the zap-backed Logger.
func (t Tag) Field() zap.Field { return t.field }

func NewStringTag(key, value string) Tag {
	return Tag{field: zap.String(key, value)}
}

func NewInt64Tag(key string, value int64) Tag {
	return Tag{field: zap.Int64(key, value)}
}

func NewIntTag(key string, value int) Tag {
	return Tag{field: zap.Int(key, value)}
}

func NewFloat64Tag(key string, value float64) Tag {
	return Tag{field: zap.Float64(key, value)}
}

func NewBoolTag(key string, value bool) Tag {
	return Tag{field: zap.Bool(key, value)}
}

func NewErrorTag(value error) Tag {
	return Tag{field: zap.Error(value)}
}

func NewDurationTag(key string, value time.Duration) Tag {
	return Tag{field: zap.Duration(key, value)}
}

func NewTimeTag(key string, value time.Time) Tag {
	return Tag{field: zap.Time(key, value)}
}

func NewObjectTag(key string, value interface{}) Tag {
	return Tag{field: zap.String(key, fmt.Sprintf("%v", value))}
}
