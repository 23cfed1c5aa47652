// Copyright 2015 CoreOS, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xlog

// NilLogger implements Logger and is a drop-in for code that wants a
// log-compatible value without actually emitting anything; it discards
// every call.
type NilLogger struct{}

// NewNilLogger returns a Logger that discards everything written to it.
func NewNilLogger() *NilLogger {
	return &NilLogger{}
}

// Fatal does nothing.
func (*NilLogger) Fatal(args ...interface{}) {}

// Fatalf does nothing.
func (*NilLogger) Fatalf(format string, args ...interface{}) {}

// Panic does nothing.
func (*NilLogger) Panic(args ...interface{}) {}

// Panicf does nothing.
func (*NilLogger) Panicf(format string, args ...interface{}) {}

// Info does nothing.
func (*NilLogger) Info(entries ...interface{}) {}

// Infof does nothing.
func (*NilLogger) Infof(format string, args ...interface{}) {}

// Error does nothing.
func (*NilLogger) Error(entries ...interface{}) {}

// Errorf does nothing.
func (*NilLogger) Errorf(format string, args ...interface{}) {}

// Warning does nothing.
func (*NilLogger) Warning(entries ...interface{}) {}

// Warningf does nothing.
func (*NilLogger) Warningf(format string, args ...interface{}) {}

// Notice does nothing.
func (*NilLogger) Notice(entries ...interface{}) {}

// Noticef does nothing.
func (*NilLogger) Noticef(format string, args ...interface{}) {}

// Debug does nothing.
func (*NilLogger) Debug(entries ...interface{}) {}

// Debugf does nothing.
func (*NilLogger) Debugf(format string, args ...interface{}) {}

// Trace does nothing.
func (*NilLogger) Trace(entries ...interface{}) {}

// Tracef does nothing.
func (*NilLogger) Tracef(format string, args ...interface{}) {}

// KV does nothing.
func (*NilLogger) KV(level LogLevel, entries ...interface{}) {}

// WithValues returns the same no-op logger.
func (n *NilLogger) WithValues(keysAndValues ...interface{}) Logger {
	return n
}

// Print is included for stdlib log.Logger compatibility; does nothing.
func (*NilLogger) Print(args ...interface{}) {}

// Println is included for stdlib log.Logger compatibility; does nothing.
func (*NilLogger) Println(args ...interface{}) {}

// Printf is included for stdlib log.Logger compatibility; does nothing.
func (*NilLogger) Printf(format string, args ...interface{}) {}
