package emergency

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/one-minute-gemma/one-minute-agent/logging"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

// audioSituations are the simulated utterances returned by get_audio_input.
var audioSituations = []string{
	"Ah! I think I'm having a heart attack",
	"Cough, cough, cough",
	"Ahh!!! My chest is killing me",
	"I feel some pressure in my chest",
	"Please help me, I'm dying",
}

// sceneCaptures are the sample image files served by get_video_input.
var sceneCaptures = []string{
	"example_1.jpeg",
	"example_2.jpg",
	"example_3.jpg",
	"example_5.jpg",
	"example_6.jpg",
}

// ProviderOptions holds configuration overrides passed to NewProvider.
type ProviderOptions struct {
	// Logger receives tool diagnostics.
	Logger logging.Logger
	// ImageDir is the directory scanned for sample scene captures.
	ImageDir string
}

// Provider is the emergency tool set. Action tools (contact calling, alarm,
// incident log) run synchronously; sensor reads use the channel-based
// asynchronous contract.
type Provider struct {
	logger   logging.Logger
	imageDir string
}

// NewProvider constructs the emergency tool provider.
func NewProvider(optFns ...func(o *ProviderOptions)) *Provider {
	opts := ProviderOptions{
		Logger:   logging.NoOpLogger{},
		ImageDir: "sample_images",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Provider{
		logger:   opts.Logger,
		imageDir: opts.ImageDir,
	}
}

// Tools implements tool.Provider.
func (p *Provider) Tools() []tool.Definition {
	return []tool.Definition{
		{
			Name:        "call_emergency_contact",
			Description: "Call a predefined emergency contact",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"contact_type": map[string]any{"type": "string", "enum": []string{"primary", "secondary", "medical"}},
				},
			},
			Domain: "emergency",
			Func:   p.callEmergencyContact,
		},
		{
			Name:        "activate_alarm",
			Description: "Trigger a loud alarm to alert nearby people",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"duration_seconds": map[string]any{"type": "integer", "description": "Alarm duration in seconds (default 60)"},
				},
			},
			Domain: "emergency",
			Func:   p.activateAlarm,
		},
		{
			Name:        "log_incident",
			Description: "Log the crisis incident with timestamp",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"incident_type": map[string]any{"type": "string", "description": "Kind of incident being logged"},
					"severity":      map[string]any{"type": "string", "enum": []string{"low", "medium", "high", "critical"}},
				},
			},
			Domain: "emergency",
			Func:   p.logIncident,
		},
		{
			Name:        "get_health_metrics",
			Description: "Returns the current health metrics of the user (heart_rate, blood_pressure, blood_oxygen)",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
			Domain:      "emergency",
			AsyncFunc:   asyncValue(p.getHealthMetrics),
		},
		{
			Name:        "get_user_location",
			Description: "Returns the current location of the user (latitude, longitude)",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
			Domain:      "emergency",
			AsyncFunc:   asyncValue(p.getUserLocation),
		},
		{
			Name:        "get_audio_input",
			Description: "Returns simulated audio input from the user indicating emergency situations",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
			Domain:      "emergency",
			AsyncFunc:   asyncValue(p.getAudioInput),
		},
		{
			Name:        "get_video_input",
			Description: "Returns a sample emergency image for multimodal analysis",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
			Domain:      "emergency",
			AsyncFunc:   asyncValue(p.getVideoInput),
		},
		{
			Name:        "get_user_details",
			Description: "Returns detailed personal and medical information about the user",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
			Domain:      "emergency",
			AsyncFunc:   asyncValue(p.getUserDetails),
		},
	}
}

// asyncValue adapts a plain function to the channel contract of
// tool.AsyncFunc. Buffered channels keep the worker from blocking when the
// executor stops waiting early.
func asyncValue(fn func(ctx context.Context, args map[string]any) (any, error)) tool.AsyncFunc {
	return func(ctx context.Context, args map[string]any) (<-chan any, <-chan error) {
		dataCh := make(chan any, 1)
		errCh := make(chan error, 1)

		go func() {
			data, err := fn(ctx, args)
			if err != nil {
				errCh <- err
				return
			}
			dataCh <- data
		}()

		return dataCh, errCh
	}
}

// decodeArgs decodes loosely-typed model arguments into a typed struct.
// Weak typing tolerates numeric strings where numbers are expected.
func decodeArgs(args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// -------------------- Action tools --------------------

type contactArgs struct {
	ContactType string `mapstructure:"contact_type"`
}

func (p *Provider) callEmergencyContact(_ context.Context, raw map[string]any) (any, error) {
	var args contactArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	contactType := strings.TrimSpace(args.ContactType)
	if contactType == "" {
		contactType = "primary"
	}

	p.logger.Info("emergency.contact.called", "contact_type", contactType)

	return map[string]any{
		"status":       "success",
		"message":      fmt.Sprintf("Called %s contact", contactType),
		"contact_type": contactType,
		"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

type alarmArgs struct {
	DurationSeconds *int `mapstructure:"duration_seconds"`
}

func (p *Provider) activateAlarm(_ context.Context, raw map[string]any) (any, error) {
	var args alarmArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	duration := 60
	if args.DurationSeconds != nil {
		duration = *args.DurationSeconds
	}

	p.logger.Info("emergency.alarm.activated", "duration_seconds", duration)

	return map[string]any{
		"status":    "success",
		"message":   fmt.Sprintf("Alarm activated for %ds", duration),
		"duration":  duration,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

type incidentArgs struct {
	IncidentType string `mapstructure:"incident_type"`
	Severity     string `mapstructure:"severity"`
}

func (p *Provider) logIncident(_ context.Context, raw map[string]any) (any, error) {
	var args incidentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	incidentType := strings.TrimSpace(args.IncidentType)
	if incidentType == "" {
		incidentType = "unknown"
	}
	severity := strings.TrimSpace(args.Severity)
	if severity == "" {
		severity = "medium"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	incidentID := "INC-" + strings.NewReplacer(":", "", "-", "", ".", "").Replace(timestamp)

	p.logger.Info("emergency.incident.logged", "incident_id", incidentID, "incident_type", incidentType, "severity", severity)

	return map[string]any{
		"status":        "success",
		"incident_id":   incidentID,
		"incident_type": incidentType,
		"severity":      severity,
		"logged_at":     timestamp,
	}, nil
}

// -------------------- Sensor tools --------------------

func (p *Provider) getHealthMetrics(_ context.Context, _ map[string]any) (any, error) {
	p.logger.Debug("emergency.sensor.read", "sensor", "health_metrics")

	return map[string]any{
		"heart_rate":     100,
		"blood_pressure": 120,
		"blood_oxygen":   95,
	}, nil
}

func (p *Provider) getUserLocation(_ context.Context, _ map[string]any) (any, error) {
	p.logger.Debug("emergency.sensor.read", "sensor", "user_location")

	return map[string]any{
		"latitude":  40.7128,
		"longitude": -74.0060,
	}, nil
}

func (p *Provider) getAudioInput(_ context.Context, _ map[string]any) (any, error) {
	p.logger.Debug("emergency.sensor.read", "sensor", "audio_input")

	return map[string]any{
		"audio": audioSituations[rand.Intn(len(audioSituations))],
	}, nil
}

func (p *Provider) getVideoInput(_ context.Context, _ map[string]any) (any, error) {
	name := sceneCaptures[rand.Intn(len(sceneCaptures))]

	data, err := os.ReadFile(filepath.Join(p.imageDir, name))
	if err != nil {
		p.logger.Warn("emergency.video.unavailable", "file", name, "error", err.Error())

		return map[string]any{
			"error":                fmt.Sprintf("Could not load image %s", name),
			"fallback_description": "Unable to access video feed - visual analysis not available",
		}, nil
	}

	mimeType := "image/png"
	if strings.HasSuffix(name, ".jpg") || strings.HasSuffix(name, ".jpeg") {
		mimeType = "image/jpeg"
	}

	p.logger.Debug("emergency.sensor.read", "sensor", "video_input", "file", name)

	return map[string]any{
		"image": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(data),
			"mime_type": mimeType,
			"filename":  name,
		},
		"description": "Emergency scene captured from video feed: " + name,
	}, nil
}

func (p *Provider) getUserDetails(_ context.Context, _ map[string]any) (any, error) {
	p.logger.Debug("emergency.sensor.read", "sensor", "user_details")

	return map[string]any{
		"name":                "John Doe",
		"age":                 30,
		"gender":              "male",
		"blood_type":          "A+",
		"medical_history":     "None",
		"current_medications": "None",
		"allergies":           "None",
		"medical_conditions":  "None",
	}, nil
}
