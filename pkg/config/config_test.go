// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_Default(t *testing.T) {
	cfg := Default()
	//
	assert.Equal(t, uint(1024), cfg.Simplify.MaxDepth)
	assert.Equal(t, uint(0), cfg.Simplify.MaxSteps)
	//
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)
}

func Test_Config_Empty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Config_Merge(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[simplify]
max_steps = 100
`))
	require.NoError(t, err)
	// Only settings given are overridden
	assert.Equal(t, uint(1024), cfg.Simplify.MaxDepth)
	assert.Equal(t, uint(100), cfg.Simplify.MaxSteps)
	assert.Equal(t, "info", cfg.Log.Level)
}

func Test_Config_ExplicitZero(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[simplify]
max_depth = 0
[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, uint(0), cfg.Simplify.MaxDepth)
	//
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func Test_Config_UnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader(`
[simplify]
max_width = 3
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simplify.max_width")
}

func Test_Config_InvalidLevel(t *testing.T) {
	_, err := Decode(strings.NewReader(`
[log]
level = "loud"
`))
	assert.Error(t, err)
}

func Test_Config_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`[simplify`))
	assert.Error(t, err)
}

func Test_Config_Load(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bvbounds.toml")
	require.NoError(t, os.WriteFile(filename, []byte("[simplify]\nmax_depth = 8\n"), 0o600))
	//
	cfg, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, uint(8), cfg.Simplify.MaxDepth)
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
