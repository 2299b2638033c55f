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

package types

// Configuration 节点配置
type Configuration map[string]interface{}

// RuleChain 规则链定义，流程图可以导出成该格式供 rulego 编辑器加载
type RuleChain struct {
	//规则链基础信息定义
	RuleChain RuleChainBaseInfo `json:"ruleChain"`
	//包含了规则链中节点和连接的信息
	Metadata RuleMetadata `json:"metadata"`
}

// RuleChainBaseInfo 规则链基础信息定义
type RuleChainBaseInfo struct {
	//规则链ID
	ID string `json:"id"`
	//Name 规则链的名称
	Name string `json:"name"`
	//DebugMode 调试模式
	DebugMode bool `json:"debugMode"`
	//Root 是否是根规则链
	Root bool `json:"root"`
	//扩展字段，记录来源规则ID等
	AdditionalInfo map[string]string `json:"additionalInfo,omitempty"`
}

// RuleMetadata 规则链元数据定义，包含了规则链中节点和连接的信息
type RuleMetadata struct {
	//数据流转的第一个节点，默认:0
	FirstNodeIndex int `json:"firstNodeIndex"`
	//节点组件定义
	Nodes []*RuleNode `json:"nodes"`
	//连接定义
	Connections []NodeConnection `json:"connections"`
}

// RuleNode 规则链节点信息定义
type RuleNode struct {
	//节点的唯一标识符
	Id string `json:"id"`
	//扩展字段，记录布局坐标
	AdditionalInfo NodeAdditionalInfo `json:"additionalInfo,omitempty"`
	//节点的类型
	Type string `json:"type"`
	//节点的名称
	Name string `json:"name"`
	//调试模式
	DebugMode bool `json:"debugMode"`
	//节点配置参数
	Configuration Configuration `json:"configuration"`
}

// NodeAdditionalInfo 用于可视化位置信息
type NodeAdditionalInfo struct {
	Description string `json:"description"`
	LayoutX     int    `json:"layoutX"`
	LayoutY     int    `json:"layoutY"`
}

// NodeConnection 规则链节点连接定义
type NodeConnection struct {
	//连接的源节点的id
	FromId string `json:"fromId"`
	//连接的目标节点的id
	ToId string `json:"toId"`
	//连接的类型
	Type string `json:"type"`
}

// 连接类型
const (
	Success = "Success"
	True    = "True"
)
