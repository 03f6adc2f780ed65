package emergency

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/one-minute-gemma/one-minute-agent/tool"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newExecutor(p *Provider) *tool.Executor {
	reg := tool.NewRegistry()
	reg.RegisterProvider(p)

	return tool.NewExecutor(reg)
}

func dataMap(t *testing.T, res tool.Result) map[string]any {
	t.Helper()
	assert.Equal(t, tool.StatusSuccess, res.Status)
	data, ok := res.Data.(map[string]any)
	assert.True(t, ok)

	return data
}

// -------------------- Catalogue Tests --------------------

func TestProviderCatalogue(t *testing.T) {
	defs := NewProvider().Tools()
	assert.Len(t, defs, 8)

	async := map[string]bool{}
	for _, def := range defs {
		assert.Equal(t, "emergency", def.Domain)
		assert.NotEmpty(t, def.Description)
		async[def.Name] = def.Async()
	}

	assert.False(t, async["call_emergency_contact"])
	assert.False(t, async["activate_alarm"])
	assert.False(t, async["log_incident"])
	assert.True(t, async["get_health_metrics"])
	assert.True(t, async["get_user_location"])
	assert.True(t, async["get_audio_input"])
	assert.True(t, async["get_video_input"])
	assert.True(t, async["get_user_details"])
}

// -------------------- Action Tool Tests --------------------

func TestCallEmergencyContactDefaultsToPrimary(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "call_emergency_contact", map[string]any{}))

	assert.Equal(t, "success", data["status"])
	assert.Equal(t, "Called primary contact", data["message"])
	assert.Equal(t, "primary", data["contact_type"])

	_, err := time.Parse(time.RFC3339Nano, data["timestamp"].(string))
	assert.NoError(t, err)
}

func TestCallEmergencyContactExplicitType(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "call_emergency_contact", map[string]any{"contact_type": "medical"}))

	assert.Equal(t, "Called medical contact", data["message"])
	assert.Equal(t, "medical", data["contact_type"])
}

func TestActivateAlarmDefaultDuration(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "activate_alarm", map[string]any{}))

	assert.Equal(t, "Alarm activated for 60s", data["message"])
	assert.Equal(t, 60, data["duration"])
}

func TestActivateAlarmCoercesStringDuration(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "activate_alarm", map[string]any{"duration_seconds": "90"}))

	assert.Equal(t, "Alarm activated for 90s", data["message"])
	assert.Equal(t, 90, data["duration"])
}

func TestActivateAlarmRejectsUndecodableArgs(t *testing.T) {
	exec := newExecutor(NewProvider())

	res := exec.Execute(context.Background(), "activate_alarm", map[string]any{"duration_seconds": map[string]any{"x": 1}})

	assert.Equal(t, tool.StatusError, res.Status)
	assert.Contains(t, res.Message, "Tool execution failed")
}

func TestLogIncidentDefaults(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "log_incident", map[string]any{}))

	assert.Equal(t, "unknown", data["incident_type"])
	assert.Equal(t, "medium", data["severity"])

	id := data["incident_id"].(string)
	assert.True(t, strings.HasPrefix(id, "INC-"))
	assert.False(t, strings.ContainsAny(strings.TrimPrefix(id, "INC-"), ":-."))

	_, err := time.Parse(time.RFC3339Nano, data["logged_at"].(string))
	assert.NoError(t, err)
}

func TestLogIncidentExplicitFields(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "log_incident", map[string]any{
		"incident_type": "cardiac",
		"severity":      "critical",
	}))

	assert.Equal(t, "cardiac", data["incident_type"])
	assert.Equal(t, "critical", data["severity"])
}

// -------------------- Sensor Tool Tests --------------------

func TestGetHealthMetrics(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "get_health_metrics", map[string]any{}))

	assert.Equal(t, map[string]any{
		"heart_rate":     100,
		"blood_pressure": 120,
		"blood_oxygen":   95,
	}, data)
}

func TestGetUserLocation(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "get_user_location", map[string]any{}))

	assert.Equal(t, 40.7128, data["latitude"])
	assert.Equal(t, -74.0060, data["longitude"])
}

func TestGetAudioInputFromCannedList(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "get_audio_input", map[string]any{}))

	assert.Contains(t, audioSituations, data["audio"])
}

func TestGetUserDetails(t *testing.T) {
	exec := newExecutor(NewProvider())

	data := dataMap(t, exec.Execute(context.Background(), "get_user_details", map[string]any{}))

	assert.Equal(t, "John Doe", data["name"])
	assert.Equal(t, 30, data["age"])
	assert.Equal(t, "A+", data["blood_type"])
	assert.Equal(t, "None", data["allergies"])
}

func TestGetVideoInputReadsSampleImage(t *testing.T) {
	dir := t.TempDir()
	content := []byte("jpeg bytes")
	for _, name := range sceneCaptures {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}

	exec := newExecutor(NewProvider(func(o *ProviderOptions) { o.ImageDir = dir }))

	data := dataMap(t, exec.Execute(context.Background(), "get_video_input", map[string]any{}))

	image, ok := data["image"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, base64.StdEncoding.EncodeToString(content), image["data"])
	assert.Equal(t, "image/jpeg", image["mime_type"])
	assert.Contains(t, sceneCaptures, image["filename"])
	assert.Equal(t, "Emergency scene captured from video feed: "+image["filename"].(string), data["description"])
}

func TestGetVideoInputFallsBackWhenUnavailable(t *testing.T) {
	exec := newExecutor(NewProvider(func(o *ProviderOptions) {
		o.ImageDir = filepath.Join(t.TempDir(), "missing")
	}))

	data := dataMap(t, exec.Execute(context.Background(), "get_video_input", map[string]any{}))

	assert.Contains(t, data["error"], "Could not load image ")
	assert.Equal(t, "Unable to access video feed - visual analysis not available", data["fallback_description"])
}
