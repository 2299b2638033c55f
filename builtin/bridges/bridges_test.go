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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralType(t *testing.T) {
	m := Default()
	assert.Equal(t, Kafka, m.GeneralType("kafka_producer"))
	assert.Equal(t, Kafka, m.GeneralType("kafka_consumer"))
	assert.Equal(t, InfluxDB, m.GeneralType("influxdb_api_v2"))
	assert.Equal(t, Redis, m.GeneralType("redis_cluster"))
	assert.Equal(t, MongoDB, m.GeneralType("mongodb_rs"))
	assert.Equal(t, GCPPubSub, m.GeneralType("gcp_pubsub_consumer"))
	assert.Equal(t, HTTP, m.GeneralType("webhook"))
	assert.Equal(t, MQTT, m.GeneralType(MQTT))
	assert.Equal(t, "kafkax", m.GeneralType("kafkax"))
}

func TestDirectionSets(t *testing.T) {
	m := Default()
	assert.True(t, m.IsTwoDirection(MQTT))
	assert.False(t, m.IsTwoDirection(Kafka))
	assert.True(t, m.IsProducerConsumer(Kafka))
	assert.False(t, m.IsProducerConsumer(MySQL))
}

func TestLoad(t *testing.T) {
	m, err := Load([]byte(`
twoDirection: [mqtt, http]
generalTypes: [elasticsearch]
aliases:
  es: elasticsearch
`))
	require.Nil(t, err)
	assert.True(t, m.IsTwoDirection(HTTP))
	assert.True(t, m.IsProducerConsumer(Kafka))
	assert.Equal(t, "elasticsearch", m.GeneralType("elasticsearch_v8"))
	assert.Equal(t, "elasticsearch", m.GeneralType("es"))
	assert.Equal(t, "kafka_producer", m.GeneralType("kafka_producer"))
	assert.Equal(t, HTTP, m.GeneralType("webhook"))

	_, err = Load([]byte(`twoDirection: [`))
	assert.NotNil(t, err)
}

func TestStore(t *testing.T) {
	s, err := LoadStore([]byte(`
"mqtt:bridge1":
  server: 127.0.0.1:1883
  direction: egress
"kafka_producer:k1": {"bootstrap_hosts": "kafka:9092"}
`))
	require.Nil(t, err)
	config, ok := s.Bridge("mqtt:bridge1")
	assert.True(t, ok)
	assert.Equal(t, "127.0.0.1:1883", config["server"])
	config["server"] = "changed"
	config, _ = s.Bridge("mqtt:bridge1")
	assert.Equal(t, "127.0.0.1:1883", config["server"])

	_, ok = s.Bridge("kafka_producer:k1")
	assert.True(t, ok)
	s.Del("kafka_producer:k1")
	_, ok = s.Bridge("kafka_producer:k1")
	assert.False(t, ok)

	_, err = LoadStore([]byte(`"mqtt:b": 1`))
	assert.NotNil(t, err)
}
