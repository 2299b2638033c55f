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

package endpoint

import (
	"errors"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testMessage struct {
	body       []byte
	headers    textproto.MIMEHeader
	params     map[string]string
	statusCode int
	err        error
}

func (m *testMessage) Body() []byte { return m.body }
func (m *testMessage) Headers() textproto.MIMEHeader {
	if m.headers == nil {
		m.headers = make(textproto.MIMEHeader)
	}
	return m.headers
}
func (m *testMessage) From() string                 { return "test" }
func (m *testMessage) GetParam(key string) string   { return m.params[key] }
func (m *testMessage) SetStatusCode(statusCode int) { m.statusCode = statusCode }
func (m *testMessage) SetBody(body []byte)          { m.body = body }
func (m *testMessage) SetError(err error)           { m.err = err }
func (m *testMessage) GetError() error              { return m.err }

func TestRouter(t *testing.T) {
	var steps []string
	router := NewRouter().From("/api/v1/flows").Process(func(router *Router, exchange *Exchange) bool {
		steps = append(steps, "s1")
		return true
	}).Process(func(router *Router, exchange *Exchange) bool {
		steps = append(steps, "s2")
		exchange.Out.SetBody(exchange.In.Body())
		return string(exchange.In.Body()) != "break"
	}).Process(func(router *Router, exchange *Exchange) bool {
		steps = append(steps, "s3")
		return true
	}).End()

	assert.Equal(t, "/api/v1/flows", router.FromToString())
	assert.Equal(t, "/api/v1/flows", router.GetId())
	assert.Equal(t, 3, len(router.GetFrom().GetProcessList()))

	out := &testMessage{}
	assert.True(t, router.GetFrom().ExecuteProcess(&Exchange{In: &testMessage{body: []byte("ok")}, Out: out}))
	assert.Equal(t, []string{"s1", "s2", "s3"}, steps)
	assert.Equal(t, "ok", string(out.Body()))

	steps = nil
	assert.False(t, router.GetFrom().ExecuteProcess(&Exchange{In: &testMessage{body: []byte("break")}, Out: &testMessage{}}))
	assert.Equal(t, []string{"s1", "s2"}, steps)

	router.SetId("flows").Disable(true)
	assert.Equal(t, "flows", router.GetId())
	assert.True(t, router.IsDisable())

	out.SetError(errors.New("failed"))
	assert.Equal(t, "failed", out.GetError().Error())
}
