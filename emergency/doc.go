// Package emergency provides the crisis-response tool provider: contact
// calling, alarm activation and incident logging as synchronous tools, plus
// channel-based sensor reads (health metrics, location, audio, video, user
// details) that exercise the executor's asynchronous path.
//
// Sensor values are simulated. Video capture reads sample images from a
// configurable directory and degrades to a text-only fallback when the
// directory is unavailable.
package emergency
