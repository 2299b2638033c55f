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

package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/config"
	"github.com/rulego/ruleflow/internal/controller"
	"github.com/rulego/ruleflow/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruleBody = `{
  "id": "rule_1",
  "sql": "SELECT payload.temp as t FROM \"t/#\" WHERE payload.temp > 10",
  "from": ["t/#"],
  "actions": [{"function": "console"}, "mqtt:bridge1"]
}`

func newTestServer(t *testing.T) (*httptest.Server, *ruleflow.RuleFlow) {
	flow := ruleflow.New(types.WithLogger(types.LoggerFunc(func(format string, v ...interface{}) {})))
	restEndpoint := NewRestServe(config.DefaultConfig, flow, flow.Config().Logger)
	NewWebsocketServe(config.DefaultConfig, restEndpoint, flow, flow.Config().Logger)
	server := httptest.NewServer(restEndpoint.Router())
	t.Cleanup(server.Close)
	return server, flow
}

func doRequest(t *testing.T, method, url, body string) (int, http.Header, []byte) {
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.Nil(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	return resp.StatusCode, resp.Header, b
}

func TestFlowApi(t *testing.T) {
	server, _ := newTestServer(t)
	base := server.URL + apiBasePath

	t.Run("Generate", func(t *testing.T) {
		code, header, body := doRequest(t, http.MethodPost, base+"/flows", ruleBody)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, controller.JsonContextType, header.Get(controller.ContentTypeKey))
		var flow types.Flow
		require.Nil(t, json.Unmarshal(body, &flow))
		assert.Equal(t, "topic-t/#", flow.Nodes.Source[0].ID)
		assert.Equal(t, "function-rule_1", flow.Nodes.Function[0].ID)
		assert.Equal(t, "filter-rule_1", flow.Nodes.Filter[0].ID)
		assert.Equal(t, 2, len(flow.Nodes.Sink))
		assert.Equal(t, 4, len(flow.Edges))
	})

	t.Run("GenerateForEdit", func(t *testing.T) {
		code, _, body := doRequest(t, http.MethodPost, base+"/flows?editing=true", ruleBody)
		assert.Equal(t, http.StatusOK, code)
		var flow types.Flow
		require.Nil(t, json.Unmarshal(body, &flow))
		assert.Equal(t, types.Position{X: 0, Y: 39}, flow.Nodes.Source[0].Position)
		assert.Equal(t, types.Position{X: 900, Y: 78}, flow.Nodes.Sink[1].Position)

		code, _, _ = doRequest(t, http.MethodPost, base+"/flows?editing=true", "["+ruleBody+","+ruleBody+"]")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("BadBody", func(t *testing.T) {
		code, _, _ := doRequest(t, http.MethodPost, base+"/flows", "{")
		assert.Equal(t, http.StatusBadRequest, code)
		code, _, _ = doRequest(t, http.MethodPost, base+"/flows", "[]")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("Layout", func(t *testing.T) {
		_, _, body := doRequest(t, http.MethodPost, base+"/flows", ruleBody)
		var flow types.Flow
		require.Nil(t, json.Unmarshal(body, &flow))
		req, _ := json.Marshal(controller.LayoutRequest{Nodes: flow.Nodes, Editing: true})
		code, _, body := doRequest(t, http.MethodPost, base+"/layout", string(req))
		assert.Equal(t, http.StatusOK, code)
		var result types.Flow
		require.Nil(t, json.Unmarshal(body, &result))
		assert.Equal(t, types.Position{X: 0, Y: 39}, result.Nodes.Source[0].Position)
		assert.Equal(t, 4, len(result.Edges))
	})

	t.Run("Fields", func(t *testing.T) {
		code, _, body := doRequest(t, http.MethodPost, base+"/fields", `{"expression":"payload.a as a, abs(payload.b) as b"}`)
		assert.Equal(t, http.StatusOK, code)
		var resp controller.FieldsResponse
		require.Nil(t, json.Unmarshal(body, &resp))
		require.Equal(t, 2, len(resp.Items))
		assert.Equal(t, "payload.b", resp.Items[1].Field)
		assert.Equal(t, "abs", resp.Items[1].Func.Name)
		assert.Equal(t, types.EditedWayForm, resp.EditedWay)

		code, _, body = doRequest(t, http.MethodPost, base+"/fields", `{"expression":"*"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, `{"items":null,"editedWay":"form"}`, string(body))
	})

	t.Run("Where", func(t *testing.T) {
		code, _, body := doRequest(t, http.MethodPost, base+"/where", `{"where":"payload.a > 1 and payload.b = 'x'"}`)
		assert.Equal(t, http.StatusOK, code)
		var resp controller.WhereResponse
		require.Nil(t, json.Unmarshal(body, &resp))
		assert.Equal(t, types.FilterLogicAnd, resp.Form.Type)
		assert.Equal(t, types.EditedWayForm, resp.EditedWay)

		code, _, body = doRequest(t, http.MethodPost, base+"/where/test", `{"where":"payload.a > 1","context":{"payload":{"a":2}}}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, `{"result":true}`, string(body))
	})

	t.Run("ToRule", func(t *testing.T) {
		_, _, body := doRequest(t, http.MethodPost, base+"/flows", ruleBody)
		var flow types.Flow
		require.Nil(t, json.Unmarshal(body, &flow))
		req, _ := json.Marshal(controller.RuleRequest{ID: "rule_1", Flow: flow})
		code, _, body := doRequest(t, http.MethodPost, base+"/rule", string(req))
		assert.Equal(t, http.StatusOK, code)
		var rule types.Rule
		require.Nil(t, json.Unmarshal(body, &rule))
		assert.Equal(t, "rule_1", rule.ID)
		assert.Equal(t, []string{"t/#"}, rule.From)
		assert.Equal(t, 2, len(rule.Actions))

		code, _, _ = doRequest(t, http.MethodPost, base+"/rule", `{"flow":{}}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("ToRuleFormEdited", func(t *testing.T) {
		_, _, body := doRequest(t, http.MethodPost, base+"/flows", ruleBody)
		var flow types.Flow
		require.Nil(t, json.Unmarshal(body, &flow))
		formData := flow.Nodes.Function[0].Data.FormData.(map[string]interface{})
		require.Equal(t, string(types.EditedWayForm), formData["editedWay"])
		items := formData["form"].([]interface{})
		items[0].(map[string]interface{})["alias"] = "edited"

		req, _ := json.Marshal(controller.RuleRequest{ID: "rule_1", Flow: flow})
		code, _, body := doRequest(t, http.MethodPost, base+"/rule", string(req))
		assert.Equal(t, http.StatusOK, code)
		var rule types.Rule
		require.Nil(t, json.Unmarshal(body, &rule))
		assert.Equal(t, "SELECT\n  payload.temp as edited\nFROM\n  \"t/#\"\nWHERE\n  payload.temp > 10", rule.SQL)
	})

	t.Run("Export", func(t *testing.T) {
		code, _, body := doRequest(t, http.MethodPost, base+"/export/dsl?id=chain01", ruleBody)
		assert.Equal(t, http.StatusOK, code)
		var def types.RuleChain
		require.Nil(t, json.Unmarshal(body, &def))
		assert.Equal(t, "chain01", def.RuleChain.ID)
		assert.Equal(t, 5, len(def.Metadata.Nodes))
		assert.Equal(t, 4, len(def.Metadata.Connections))

		code, header, body := doRequest(t, http.MethodPost, base+"/export/dot", ruleBody)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, controller.GraphvizDotType, header.Get(controller.ContentTypeKey))
		assert.True(t, strings.Contains(string(body), "digraph"))
		assert.True(t, strings.Contains(string(body), "cluster_filter"))

		code, _, _ = doRequest(t, http.MethodPost, base+"/export/png", ruleBody)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestRuleApi(t *testing.T) {
	server, flow := newTestServer(t)
	base := server.URL + apiBasePath + "/rules"

	code, _, _ := doRequest(t, http.MethodPost, base+"/rule_a", ruleBody)
	assert.Equal(t, http.StatusOK, code)
	rule, ok := flow.Get("rule_a")
	assert.True(t, ok)
	assert.Equal(t, []string{"t/#"}, rule.From)

	code, _, body := doRequest(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusOK, code)
	var rules []types.Rule
	require.Nil(t, json.Unmarshal(body, &rules))
	assert.Equal(t, 1, len(rules))

	code, _, body = doRequest(t, http.MethodGet, base+"/rule_a/flow", "")
	assert.Equal(t, http.StatusOK, code)
	var result types.Flow
	require.Nil(t, json.Unmarshal(body, &result))
	assert.Equal(t, "function-rule_a", result.Nodes.Function[0].ID)

	code, _, _ = doRequest(t, http.MethodGet, server.URL+apiBasePath+"/flows", "")
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = doRequest(t, http.MethodDelete, base+"/rule_a", "")
	assert.Equal(t, http.StatusNoContent, code)
	code, _, _ = doRequest(t, http.MethodGet, base+"/rule_a", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _, _ = doRequest(t, http.MethodDelete, base+"/rule_a", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLiveEdit(t *testing.T) {
	server, _ := newTestServer(t)
	wsBase := "ws" + strings.TrimPrefix(server.URL, "http") + apiBasePath

	conn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/edit", nil)
	require.Nil(t, err)
	defer conn.Close()

	read := func() []byte {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
		_, body, err := conn.ReadMessage()
		require.Nil(t, err)
		return body
	}

	require.Nil(t, conn.WriteMessage(websocket.TextMessage, []byte(ruleBody)))
	var flow types.Flow
	require.Nil(t, json.Unmarshal(read(), &flow))
	assert.Equal(t, types.Position{X: 0, Y: 39}, flow.Nodes.Source[0].Position)

	//错误不断开连接
	require.Nil(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Contains(t, string(read()), `"error"`)

	layoutConn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/layout", nil)
	require.Nil(t, err)
	defer layoutConn.Close()
	req, _ := json.Marshal(controller.LayoutRequest{Nodes: flow.Nodes})
	require.Nil(t, layoutConn.WriteMessage(websocket.TextMessage, req))
	_ = layoutConn.SetReadDeadline(time.Now().Add(time.Second * 2))
	_, body, err := layoutConn.ReadMessage()
	require.Nil(t, err)
	var result types.Flow
	require.Nil(t, json.Unmarshal(body, &result))
	assert.Equal(t, 4, len(result.Edges))
	assert.Equal(t, flow.Nodes.Sink[1].Position, result.Nodes.Sink[1].Position)
}

func TestCors(t *testing.T) {
	flow := ruleflow.New()
	c := config.DefaultConfig
	c.AllowCors = true
	server := httptest.NewServer(NewRestServe(c, flow, nil).Router())
	defer server.Close()
	code, header, _ := doRequest(t, http.MethodGet, server.URL+apiBasePath+"/rules", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "*", header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, controller.JsonContextType, header.Get(controller.ContentTypeKey))
}
