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
	"strings"

	"github.com/rulego/ruleflow/api/types"
)

// directionOfType 只处理生产者/消费者类型族，类型名包含 consumer 为入口，否则为出口
func (c *Compiler) directionOfType(bridgeType string) (types.BridgeDirection, bool) {
	bridges := c.config.Bridges
	if bridges == nil {
		return "", false
	}
	if bridges.IsProducerConsumer(bridges.GeneralType(bridgeType)) {
		if strings.Contains(bridgeType, "consumer") {
			return types.BridgeDirectionIngress, true
		}
		return types.BridgeDirectionEgress, true
	}
	return "", false
}

// SpecificTypeForBridge 把桥接类型转换成带方向的具体类型
//   - 双向类型：输出节点为出口，其他为入口
//   - 生产者/消费者类型族：根据类型名判断方向
//   - 其他：通用类型
//
// bridgeType 是具体类型，例如 influxdb_api_v2
func (c *Compiler) SpecificTypeForBridge(bridgeType string, nodeType types.NodeType) string {
	bridges := c.config.Bridges
	if bridges == nil {
		return bridgeType
	}
	if bridges.IsTwoDirection(bridgeType) {
		direction := types.BridgeDirectionIngress
		if nodeType == types.NodeTypeSink {
			direction = types.BridgeDirectionEgress
		}
		return types.SpecificTypeWithDirection(bridgeType, direction)
	}
	if direction, ok := c.directionOfType(bridgeType); ok {
		return types.SpecificTypeWithDirection(bridges.GeneralType(bridgeType), direction)
	}
	return bridges.GeneralType(bridgeType)
}
