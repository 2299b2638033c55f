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

package funcs

import (
	"errors"
	"fmt"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
	"gopkg.in/yaml.v3"
)

var ErrEmptyFuncName = errors.New("function name can not be empty")

// catalogFile 函数目录文件格式(yaml或者json)
//
//	groups:
//	  map: 1
//	functions:
//	  - name: map_get
//	    group: map
//	    args: [{name: key, required: true}, {name: map, required: true}]
type catalogFile struct {
	Groups    map[string]int           `mapstructure:"groups"`
	Functions []map[string]interface{} `mapstructure:"functions"`
}

// LoadCatalog 在内置函数目录的基础上加载文件中的函数签名，同名覆盖
func LoadCatalog(data []byte) (*Catalog, error) {
	c := DefaultCatalog()
	if err := c.Load(data); err != nil {
		return nil, err
	}
	return c, nil
}

// Load 加载函数签名到目录
func (c *Catalog) Load(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse function catalog: %w", err)
	}
	var file catalogFile
	if err := maps.Map2Struct(raw, &file); err != nil {
		return fmt.Errorf("decode function catalog: %w", err)
	}
	for group, idx := range file.Groups {
		c.SetGroupFieldArg(group, idx)
	}
	for i, item := range file.Functions {
		s := types.FuncSignature{FieldArg: UseGroupFieldArg}
		if err := maps.Map2Struct(item, &s); err != nil {
			return fmt.Errorf("decode function %d: %w", i, err)
		}
		if s.Name == "" {
			return fmt.Errorf("function %d: %w", i, ErrEmptyFuncName)
		}
		c.Register(s)
	}
	return nil
}
