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

// Package describe 生成节点描述和节点名称
package describe

import (
	"strings"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
	"github.com/rulego/ruleflow/utils/str"
)

// Describer 默认节点描述
// 数据源和输出节点显示主题、事件或者桥接名称，处理节点显示SQL
type Describer struct {
	// MaxLength 描述最大长度，超过截断，<=0不限制
	MaxLength int
}

var _ types.Describer = (*Describer)(nil)

func (d *Describer) Describe(node types.Node) string {
	return str.Truncate(d.describe(node), d.MaxLength)
}

func (d *Describer) describe(node types.Node) string {
	switch form := node.Data.FormData.(type) {
	case types.EventForm:
		return form.Event
	case types.MessageForm:
		return form.Topic
	case types.ConsoleForm:
		return ""
	case types.OutputItem:
		return form.Topic()
	case types.ProcessingForm:
		return describeProcessing(form)
	}
	switch node.Data.SpecificType {
	case types.ProcessingTypeFunction, types.ProcessingTypeFilter:
		if form, err := types.AsProcessingForm(node.Data.FormData, node.Data.SpecificType); err == nil {
			return describeProcessing(form)
		}
	}
	m, err := maps.Struct2Map(node.Data.FormData)
	if err != nil {
		return ""
	}
	if name := str.ToString(m["name"]); name != "" {
		return name
	}
	return str.ToString(m["id"])
}

func describeProcessing(form types.ProcessingForm) string {
	if form.EditedWay == types.EditedWayForm {
		switch v := form.Form.(type) {
		case []types.FunctionItem:
			return types.FunctionItemsSQL(v)
		case *types.FilterForm:
			if v != nil {
				return v.SQL()
			}
		}
	}
	return strings.Join(strings.Fields(form.SQL), " ")
}

// Labeler 默认英文名称
type Labeler struct {
	Names map[string]string
}

var _ types.Labeler = (*Labeler)(nil)

var defaultNames = map[string]string{
	types.SourceTypeEvent:        "Event",
	types.SourceTypeMessage:      "Messages",
	types.SinkTypeConsole:        "Console Output",
	types.SinkTypeRePub:          "Republish",
	types.ProcessingTypeFilter:   "Filter",
	types.ProcessingTypeFunction: "Data Processing",
	"mqtt":                       "MQTT Broker",
	"http":                       "HTTP Server",
	"kafka":                      "Kafka",
	"confluent":                  "Confluent",
	"azure_event_hub":            "Azure Event Hubs",
	"gcp_pubsub":                 "GCP PubSub",
	"rabbitmq":                   "RabbitMQ",
	"pulsar":                     "Pulsar",
	"influxdb":                   "InfluxDB",
	"redis":                      "Redis",
	"mongodb":                    "MongoDB",
	"mysql":                      "MySQL",
	"pgsql":                      "PostgreSQL",
}

// NewLabeler 创建名称表，names 覆盖默认名称
func NewLabeler(names map[string]string) *Labeler {
	l := &Labeler{Names: make(map[string]string, len(defaultNames)+len(names))}
	for k, v := range defaultNames {
		l.Names[k] = v
	}
	for k, v := range names {
		l.Names[k] = v
	}
	return l
}

// Label 带方向的类型显示为 "{名称} Ingress/Egress"，未知类型返回原值
func (l *Labeler) Label(specificType string) string {
	if name, ok := l.Names[specificType]; ok {
		return name
	}
	for _, direction := range []types.BridgeDirection{types.BridgeDirectionIngress, types.BridgeDirectionEgress} {
		suffix := "-" + string(direction)
		if base := strings.TrimSuffix(specificType, suffix); base != specificType {
			d := string(direction)
			return l.Label(base) + " " + strings.ToUpper(d[:1]) + d[1:]
		}
	}
	return specificType
}
