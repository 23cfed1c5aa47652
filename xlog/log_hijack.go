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

import (
	"log"
	"strings"
)

// hijackLogger is the PackageLogger that stdlib log.Print* output is routed
// through once hijacked, at INFO level, under the package name "log".
var hijackLogger = NewPackageLogger("log", "log")

func init() {
	log.SetOutput(logWriter{})
}

// logWriter adapts the stdlib log package's io.Writer output to a
// PackageLogger, so code that still calls log.Println goes through the
// same formatter and level gate as everything else.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	hijackLogger.internalLog(plain, calldepth+3, INFO, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
