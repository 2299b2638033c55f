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

// Package export 把流程图导出成其他格式：rulego 规则链DSL、Graphviz DOT
package export

import (
	"github.com/gofrs/uuid/v5"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
)

// NodeTypePrefix 导出的规则链节点类型前缀
const NodeTypePrefix = "ruleflow/"

// ToRuleChain 导出成 rulego 规则链，id 为空时生成uuid
// 节点坐标保存在 additionalInfo.layoutX/layoutY，每条连线对应一个连接
func ToRuleChain(id string, name string, flow types.Flow) types.RuleChain {
	if id == "" {
		uid, _ := uuid.NewV4()
		id = uid.String()
	}
	var def = types.RuleChain{
		RuleChain: types.RuleChainBaseInfo{ID: id, Name: name, Root: true},
		Metadata:  types.RuleMetadata{Nodes: []*types.RuleNode{}, Connections: []types.NodeConnection{}},
	}
	for _, node := range flow.Nodes.All() {
		configuration, err := maps.Struct2Map(node.Data.FormData)
		if err != nil || configuration == nil {
			configuration = map[string]interface{}{}
		} else {
			configuration = maps.Copy(configuration)
		}
		if len(node.Data.RulesUsed) > 0 {
			configuration["rulesUsed"] = node.Data.RulesUsed
		}
		def.Metadata.Nodes = append(def.Metadata.Nodes, &types.RuleNode{
			Id:   node.ID,
			Type: NodeTypePrefix + node.Data.SpecificType,
			Name: node.Label,
			AdditionalInfo: types.NodeAdditionalInfo{
				Description: node.Data.Desc,
				LayoutX:     int(node.Position.X),
				LayoutY:     int(node.Position.Y),
			},
			Configuration: configuration,
		})
	}
	for _, edge := range flow.Edges {
		def.Metadata.Connections = append(def.Metadata.Connections, types.NodeConnection{
			FromId: edge.Source,
			ToId:   edge.Target,
			Type:   types.Success,
		})
	}
	return def
}
