// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	old := Root()
	SetDefault(NewLogger(JSONHandlerWithLevel(&buf, slog.LevelDebug)))
	defer SetDefault(old)

	logger := WithContext("pkg", "lockstaking")
	logger.Info("pool updated", "pid", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "lockstaking", record["pkg"])
	assert.Equal(t, "pool updated", record["msg"])
	assert.Equal(t, float64(7), record["pid"])
}

func TestVerbosityGate(t *testing.T) {
	var buf bytes.Buffer
	old := Root()
	SetDefault(NewLogger(JSONHandlerWithLevel(&buf, FromLegacyLevel(3))))
	defer SetDefault(old)

	Debug("hidden")
	assert.Zero(t, buf.Len())

	Info("shown")
	assert.NotZero(t, buf.Len())
}
