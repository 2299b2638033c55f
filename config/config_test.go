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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rulego/ruleflow/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	file := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestLoad(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		c, err := Load("")
		assert.Nil(t, err)
		assert.Equal(t, DefaultConfig, c)
		assert.Equal(t, types.DefaultGeometry(), c.Geometry())
	})

	t.Run("File", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFile(t, dir, "config.conf", `
server = :8080
node_width = 240
row_spacing = 20
rules_dir = ./rules

[labels]
mqtt = MQTT Broker
`)
		c, err := Load(file)
		require.Nil(t, err)
		assert.Equal(t, ":8080", c.Server)
		assert.Equal(t, float64(240), c.NodeWidth)
		assert.Equal(t, float64(types.DefaultNodeHeight), c.NodeHeight)
		assert.Equal(t, float64(20), c.RowSpacing)
		assert.Equal(t, "./rules", c.RulesDir)
		assert.Equal(t, "MQTT Broker", c.Labels["mqtt"])
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.conf"))
		assert.NotNil(t, err)
	})
}

func TestOptions(t *testing.T) {
	dir := t.TempDir()
	c := DefaultConfig
	c.FunctionsFile = writeFile(t, dir, "funcs.yaml", `
functions:
  - name: my_upper
    group: string
    args: [{name: str, required: true}]
`)
	c.BridgesFile = writeFile(t, dir, "bridges.yaml", "twoDirection: [mqtt, http]\n")
	c.BridgeConfigsFile = writeFile(t, dir, "bridge_configs.json", `{"mqtt:bridge1": {"server": "127.0.0.1:1883"}}`)
	c.Labels = map[string]string{"mqtt": "MQTT Broker"}

	opts, err := c.Options(nil)
	require.Nil(t, err)
	config := types.NewConfig(opts...)
	assert.NotNil(t, config.Logger)
	assert.Equal(t, c.Geometry(), config.Geometry)

	group, ok := config.Functions.Group("my_upper")
	assert.True(t, ok)
	assert.Equal(t, "string", group)
	assert.True(t, config.Bridges.IsTwoDirection("http"))
	_, ok = config.BridgeLookup.Bridge("mqtt:bridge1")
	assert.True(t, ok)
	assert.Equal(t, "MQTT Broker", config.Labeler.Label("mqtt"))

	c.FunctionsFile = filepath.Join(dir, "none.yaml")
	_, err = c.Options(nil)
	assert.NotNil(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := DefaultConfig.NewLogger()
	assert.Nil(t, err)
	assert.NotNil(t, logger)

	c := DefaultConfig
	c.LogFile = filepath.Join(t.TempDir(), "ruleflow.log")
	logger, err = c.NewLogger()
	require.Nil(t, err)
	logger.Printf("hello")
	buf, err := os.ReadFile(c.LogFile)
	assert.Nil(t, err)
	assert.Contains(t, string(buf), "hello")
}
