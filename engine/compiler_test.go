/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"fmt"
	"sync"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/builtin/bridges"
	"github.com/rulego/ruleflow/builtin/describe"
	"github.com/rulego/ruleflow/builtin/funcs"
	"github.com/rulego/ruleflow/builtin/where"
)

// testLogger 记录日志，用于检查降级路径
type testLogger struct {
	lock  sync.Mutex
	lines []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *testLogger) Lines() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.lines...)
}

func newTestCompiler(opts ...types.Option) *Compiler {
	defaults := []types.Option{
		types.WithLogger(&testLogger{}),
		types.WithFunctionRegistry(funcs.DefaultCatalog()),
		types.WithBridgeTypes(bridges.Default()),
		types.WithWhereParser(where.New()),
		types.WithDescriber(&describe.Describer{}),
		types.WithLabeler(describe.NewLabeler(nil)),
	}
	return NewCompiler(types.NewConfig(append(defaults, opts...)...))
}
