package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"aircon_controller/internal/models"

	"github.com/cormoran/natureremo"
)

// Remo talks to the Nature Remo cloud API.
type Remo struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

var _ Gateway = (*Remo)(nil)

// NewRemo builds a gateway. An empty baseURL keeps the library default.
func NewRemo(baseURL string, timeout time.Duration) *Remo {
	return &Remo{
		baseURL:   baseURL,
		timeout:   timeout,
		transport: http.DefaultTransport,
	}
}

// statusRecorder remembers the status of the last response so failures can be
// classified without depending on the client library's error types.
type statusRecorder struct {
	next http.RoundTripper

	mu     sync.Mutex
	status int
}

func (s *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if resp != nil {
		s.mu.Lock()
		s.status = resp.StatusCode
		s.mu.Unlock()
	}
	return resp, err
}

func (s *statusRecorder) lastStatus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (r *Remo) newClient(token string) (*natureremo.Client, *statusRecorder) {
	rec := &statusRecorder{next: r.transport}
	cli := natureremo.NewClient(token)
	cli.HTTPClient = &http.Client{Timeout: r.timeout, Transport: rec}
	if r.baseURL != "" {
		cli.BaseURL = r.baseURL
	}
	return cli, rec
}

func classify(op string, rec *statusRecorder, err error) error {
	status := rec.lastStatus()
	kind := KindTransport
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 200 && status < 300:
		// a response arrived but could not be decoded
		kind = KindData
	}
	return &Error{Op: op, Kind: kind, Status: status, Err: err}
}

// ListAppliances fetches every appliance registered to the account.
func (r *Remo) ListAppliances(ctx context.Context, token string) ([]models.Appliance, error) {
	cli, rec := r.newClient(token)
	apps, err := cli.ApplianceService.GetAll(ctx)
	if err != nil {
		return nil, classify("list_appliances", rec, err)
	}
	out := make([]models.Appliance, 0, len(apps))
	for _, a := range apps {
		if a == nil {
			continue
		}
		out = append(out, toAppliance(a))
	}
	return out, nil
}

// ListDevices fetches every Remo device with its newest sensor events.
func (r *Remo) ListDevices(ctx context.Context, token string) ([]models.Device, error) {
	cli, rec := r.newClient(token)
	devs, err := cli.DeviceService.GetAll(ctx)
	if err != nil {
		return nil, classify("list_devices", rec, err)
	}
	out := make([]models.Device, 0, len(devs))
	for _, d := range devs {
		if d == nil {
			continue
		}
		out = append(out, toDevice(d))
	}
	return out, nil
}

// SetTemperature posts a new set-point for an air conditioner.
func (r *Remo) SetTemperature(ctx context.Context, token, applianceID, temp string) error {
	cli, rec := r.newClient(token)
	app := &natureremo.Appliance{ID: applianceID}
	settings := &natureremo.AirConSettings{Temperature: temp}
	if err := cli.ApplianceService.UpdateAirConSettings(ctx, app, settings); err != nil {
		return classify("set_temperature", rec, err)
	}
	return nil
}

func toAppliance(a *natureremo.Appliance) models.Appliance {
	out := models.Appliance{
		ID:       a.ID,
		Type:     string(a.Type),
		Nickname: a.Nickname,
		PowerOn:  true,
	}
	if a.Device != nil {
		out.DeviceID = a.Device.ID
	}
	if a.Settings != nil {
		out.SetTemperature = a.Settings.Temperature
		out.PowerOn = models.PowerOnFromButton(string(a.Settings.Button))
	}
	return out
}

func toDevice(d *natureremo.Device) models.Device {
	out := models.Device{ID: d.ID}
	if v, ok := d.NewestEvents[natureremo.SensorTypeTemperature]; ok {
		out.RoomTemperature = v.Value
		out.HasTemperature = true
	}
	return out
}
