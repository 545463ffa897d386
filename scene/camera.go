package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

// PhysicalCameraParameters describe a real camera's exposure settings.
type PhysicalCameraParameters struct {
	ApertureFStops float32 `toml:"aperture_f_stops" yaml:"aperture_f_stops"`
	ShutterSpeedS  float32 `toml:"shutter_speed_s" yaml:"shutter_speed_s"`
	SensitivityISO float32 `toml:"sensitivity_iso" yaml:"sensitivity_iso"`
	SensorHeight   float32 `toml:"sensor_height" yaml:"sensor_height"` // meters
}

// DefaultPhysicalCamera is f/1, 1/125 s, ISO 100 on a 18.66 mm sensor.
func DefaultPhysicalCamera() PhysicalCameraParameters {
	return PhysicalCameraParameters{
		ApertureFStops: 1.0,
		ShutterSpeedS:  1.0 / 125.0,
		SensitivityISO: 100.0,
		SensorHeight:   0.01866,
	}
}

// EV100 is the exposure value at ISO 100: log2(N² · 100 / (t · S)).
func (p PhysicalCameraParameters) EV100() float32 {
	x := p.ApertureFStops * p.ApertureFStops * 100 / (p.ShutterSpeedS * p.SensitivityISO)
	return math32.Log(x) / math32.Log(2)
}

// Validate rejects parameters that would make EV100 undefined.
func (p PhysicalCameraParameters) Validate() error {
	if p.ApertureFStops <= 0 || p.ShutterSpeedS <= 0 || p.SensitivityISO <= 0 || p.SensorHeight <= 0 {
		return fmt.Errorf("physical camera: non-positive parameter in %+v", p)
	}
	return nil
}
