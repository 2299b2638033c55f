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

// Package bridges 桥接类型元数据：通用类型、双向类型和生产者/消费者类型族
package bridges

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
	"github.com/rulego/ruleflow/utils/str"
	"gopkg.in/yaml.v3"
)

// 常用桥接类型
const (
	MQTT          = "mqtt"
	HTTP          = "http"
	Kafka         = "kafka"
	Confluent     = "confluent"
	AzureEventHub = "azure_event_hub"
	GCPPubSub     = "gcp_pubsub"
	RabbitMQ      = "rabbitmq"
	Pulsar        = "pulsar"
	InfluxDB      = "influxdb"
	Redis         = "redis"
	MongoDB       = "mongodb"
	MySQL         = "mysql"
	PgSQL         = "pgsql"
)

// Metadata 桥接类型元数据，实现 types.BridgeTypes
type Metadata struct {
	// TwoDirection 入口和出口配置结构不同的类型
	TwoDirection []string `mapstructure:"twoDirection"`
	// ProducerConsumer 生产者/消费者类型族(通用类型)
	ProducerConsumer []string `mapstructure:"producerConsumer"`
	// GeneralTypes 通用类型，具体类型以 {通用类型}_ 开头时归并到该类型
	GeneralTypes []string `mapstructure:"generalTypes"`
	// Aliases 具体类型到通用类型的显式映射，优先于前缀匹配
	Aliases map[string]string `mapstructure:"aliases"`
}

var _ types.BridgeTypes = (*Metadata)(nil)

// Default 内置元数据
func Default() *Metadata {
	m := &Metadata{
		TwoDirection:     []string{MQTT},
		ProducerConsumer: []string{Kafka, Confluent, AzureEventHub, GCPPubSub, RabbitMQ, Pulsar},
		GeneralTypes: []string{Kafka, Confluent, AzureEventHub, GCPPubSub, RabbitMQ, Pulsar,
			InfluxDB, Redis, MongoDB, "matrix", "timescale", "clickhouse", "dynamo", "iotdb", "syskeeper"},
		Aliases: map[string]string{
			"webhook": HTTP,
		},
	}
	m.normalize()
	return m
}

// Load 解析yaml或者json，未配置的字段使用内置值
func Load(data []byte) (*Metadata, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bridge metadata: %w", err)
	}
	m := Default()
	var loaded Metadata
	if err := maps.Map2Struct(raw, &loaded); err != nil {
		return nil, fmt.Errorf("decode bridge metadata: %w", err)
	}
	if loaded.TwoDirection != nil {
		m.TwoDirection = loaded.TwoDirection
	}
	if loaded.ProducerConsumer != nil {
		m.ProducerConsumer = loaded.ProducerConsumer
	}
	if loaded.GeneralTypes != nil {
		m.GeneralTypes = loaded.GeneralTypes
	}
	for k, v := range loaded.Aliases {
		m.Aliases[k] = v
	}
	m.normalize()
	return m, nil
}

// normalize 通用类型按长度倒序，保证最长前缀优先
func (m *Metadata) normalize() {
	if m.Aliases == nil {
		m.Aliases = make(map[string]string)
	}
	sort.SliceStable(m.GeneralTypes, func(i, j int) bool {
		return len(m.GeneralTypes[i]) > len(m.GeneralTypes[j])
	})
}

func (m *Metadata) GeneralType(rawType string) string {
	if v, ok := m.Aliases[rawType]; ok {
		return v
	}
	for _, general := range m.GeneralTypes {
		if rawType == general || strings.HasPrefix(rawType, general+"_") {
			return general
		}
	}
	return rawType
}

func (m *Metadata) IsTwoDirection(bridgeType string) bool {
	return str.Contains(m.TwoDirection, bridgeType)
}

func (m *Metadata) IsProducerConsumer(generalType string) bool {
	return str.Contains(m.ProducerConsumer, generalType)
}
