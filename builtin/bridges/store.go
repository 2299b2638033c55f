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

package bridges

import (
	"fmt"
	"sync"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
	"gopkg.in/yaml.v3"
)

// Store 已存在的桥接配置，实现 types.BridgeLookup
// key 为桥接ID，格式：{bridgeType}:{bridgeName}
type Store struct {
	bridges map[string]map[string]interface{}
	lock    sync.RWMutex
}

var _ types.BridgeLookup = (*Store)(nil)

func NewStore() *Store {
	return &Store{bridges: make(map[string]map[string]interface{})}
}

// LoadStore 解析yaml或者json：
//
//	mqtt:bridge1:
//	  server: 127.0.0.1:1883
//	  direction: egress
func LoadStore(data []byte) (*Store, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bridge configs: %w", err)
	}
	s := NewStore()
	for id, v := range raw {
		config, ok := v.(map[string]interface{})
		if !ok && v != nil {
			return nil, fmt.Errorf("bridge %s config must be an object", id)
		}
		s.Put(id, config)
	}
	return s, nil
}

// Put 添加或者更新桥接配置
func (s *Store) Put(bridgeID string, config map[string]interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.bridges[bridgeID] = maps.Copy(config)
}

// Del 删除桥接，引用它的节点会被标记为已删除
func (s *Store) Del(bridgeID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.bridges, bridgeID)
}

func (s *Store) Bridge(bridgeID string) (map[string]interface{}, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	config, ok := s.bridges[bridgeID]
	if !ok {
		return nil, false
	}
	return maps.Copy(config), true
}
