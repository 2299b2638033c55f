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

// Package processor 内置端点处理器，路由通过名称引用
package processor

import (
	"sync"

	"github.com/rulego/ruleflow/endpoint"
)

const (
	// ResponseJson 响应 Content-Type 设置为 application/json
	ResponseJson = "responseJson"
	// Cors 允许跨域
	Cors = "cors"
)

// Builtins 内置处理器
var Builtins = builtins{}

func init() {
	Builtins.RegisterAll(map[string]endpoint.Process{
		ResponseJson: func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
			exchange.Out.Headers().Set("Content-Type", "application/json")
			return true
		},
		Cors: func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
			exchange.Out.Headers().Set("Access-Control-Allow-Origin", "*")
			exchange.Out.Headers().Set("Access-Control-Allow-Methods", "*")
			exchange.Out.Headers().Set("Access-Control-Allow-Headers", "*")
			return true
		},
	})
}

type builtins struct {
	processors map[string]endpoint.Process
	lock       sync.RWMutex
}

// Register 注册内置处理器
func (b *builtins) Register(name string, processor endpoint.Process) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.processors == nil {
		b.processors = make(map[string]endpoint.Process)
	}
	b.processors[name] = processor
}

// RegisterAll 注册内置处理器
func (b *builtins) RegisterAll(processors map[string]endpoint.Process) {
	for k, v := range processors {
		b.Register(k, v)
	}
}

// Unregister 删除内置处理器
func (b *builtins) Unregister(names ...string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	for _, name := range names {
		delete(b.processors, name)
	}
}

// Get 获取内置处理器
func (b *builtins) Get(name string) (endpoint.Process, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	p, ok := b.processors[name]
	return p, ok
}

// GetAll 按名称获取多个处理器，不存在的名称忽略
func (b *builtins) GetAll(names ...string) []endpoint.Process {
	var result []endpoint.Process
	for _, name := range names {
		if p, ok := b.Get(name); ok {
			result = append(result, p)
		}
	}
	return result
}
