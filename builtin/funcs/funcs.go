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

// Package funcs 规则SQL内置函数目录
// 编译 SELECT 字段时通过函数名查找分组和参数签名
package funcs

import (
	"sync"

	"github.com/rulego/ruleflow/api/types"
)

// UseGroupFieldArg 使用分组默认的字段参数下标
const UseGroupFieldArg = -1

// FuncMap 并发安全的名称注册表
type FuncMap[T any] struct {
	v map[string]T
	sync.RWMutex
}

// NewFuncMap 创建注册表
func NewFuncMap[T any]() *FuncMap[T] {
	return &FuncMap[T]{v: make(map[string]T)}
}

func (x *FuncMap[T]) Register(name string, value T) {
	x.Lock()
	defer x.Unlock()
	if x.v == nil {
		x.v = make(map[string]T)
	}
	x.v[name] = value
}

func (x *FuncMap[T]) RegisterAll(values map[string]T) {
	x.Lock()
	defer x.Unlock()
	if x.v == nil {
		x.v = make(map[string]T)
	}
	for k, v := range values {
		x.v[k] = v
	}
}

func (x *FuncMap[T]) UnRegister(name string) {
	x.Lock()
	defer x.Unlock()
	if x.v != nil {
		delete(x.v, name)
	}
}

func (x *FuncMap[T]) Get(name string) (T, bool) {
	x.RLock()
	defer x.RUnlock()
	f, ok := x.v[name]
	return f, ok
}

func (x *FuncMap[T]) GetAll() map[string]T {
	x.RLock()
	defer x.RUnlock()
	cp := make(map[string]T, len(x.v))
	for k, v := range x.v {
		cp[k] = v
	}
	return cp
}

func (x *FuncMap[T]) Names() []string {
	x.RLock()
	defer x.RUnlock()
	var keys = make([]string, 0, len(x.v))
	for k := range x.v {
		keys = append(keys, k)
	}
	return keys
}

// Catalog 函数目录，实现 types.FunctionRegistry
type Catalog struct {
	signatures *FuncMap[types.FuncSignature]
	// 分组默认字段参数下标
	groupFieldArg *FuncMap[int]
}

var _ types.FunctionRegistry = (*Catalog)(nil)

// NewCatalog 创建函数目录
func NewCatalog(signatures ...types.FuncSignature) *Catalog {
	c := &Catalog{
		signatures:    NewFuncMap[types.FuncSignature](),
		groupFieldArg: NewFuncMap[int](),
	}
	c.Register(signatures...)
	return c
}

// DefaultCatalog 包含内置函数的目录
func DefaultCatalog() *Catalog {
	c := NewCatalog(builtinSignatures()...)
	for group, idx := range builtinGroupFieldArg {
		c.SetGroupFieldArg(group, idx)
	}
	return c
}

// Register 注册函数签名，同名覆盖
func (c *Catalog) Register(signatures ...types.FuncSignature) {
	for _, sig := range signatures {
		c.signatures.Register(sig.Name, sig)
	}
}

// SetGroupFieldArg 设置分组默认字段参数下标
func (c *Catalog) SetGroupFieldArg(group string, idx int) {
	c.groupFieldArg.Register(group, idx)
}

// Names 所有函数名
func (c *Catalog) Names() []string {
	return c.signatures.Names()
}

func (c *Catalog) Group(name string) (string, bool) {
	sig, ok := c.signatures.Get(name)
	if !ok || sig.Group == "" {
		return "", false
	}
	return sig.Group, true
}

func (c *Catalog) Signature(name string) (types.FuncSignature, bool) {
	return c.signatures.Get(name)
}

func (c *Catalog) FieldArgIndex(sig types.FuncSignature, group string) int {
	if sig.FieldArg >= 0 {
		return sig.FieldArg
	}
	if idx, ok := c.groupFieldArg.Get(group); ok {
		return idx
	}
	return 0
}
