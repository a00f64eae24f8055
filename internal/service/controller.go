package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aircon_controller/internal/cache"
	"aircon_controller/internal/gateway"
	"aircon_controller/internal/logger"
	"aircon_controller/internal/models"
	"aircon_controller/internal/mqtt"
	"aircon_controller/internal/repository"

	"github.com/google/uuid"
)

// Outcome names how a control run ended.
type Outcome string

const (
	OutcomeSetupRequired   Outcome = "setup_required"
	OutcomeCooldown        Outcome = "cooldown"
	OutcomeCachedInRange   Outcome = "cached_in_range"
	OutcomeNoChange        Outcome = "no_change"
	OutcomeSetpointChanged Outcome = "setpoint_changed"
	OutcomeOffDetected     Outcome = "off_detected"
)

// Result describes a finished run. Decision and RoomTemperature are set only
// when live data was fetched.
type Result struct {
	Outcome         Outcome
	Cooldown        Cooldown
	CachedTemp      float64
	RoomTemperature float64
	Decision        Decision
}

// TemperatureCache is the read side of the external temperature log.
type TemperatureCache interface {
	Latest(now time.Time) (cache.Sample, error)
}

type ControlService struct {
	settings  repository.SettingsRepo
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	gw        gateway.Gateway
	cache     TemperatureCache
	publisher mqtt.Publisher
	policy    Policy
	log       *logger.Logger
	now       func() time.Time
}

func NewControlService(
	repos *repository.Repository,
	gw gateway.Gateway,
	tc TemperatureCache,
	publisher mqtt.Publisher,
	policy Policy,
	log *logger.Logger,
) *ControlService {
	if publisher == nil {
		publisher = mqtt.NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ControlService{
		settings:  repos.Settings,
		stateRepo: repos.StateRepo,
		eventRepo: repos.EventRepo,
		gw:        gw,
		cache:     tc,
		publisher: publisher,
		policy:    policy,
		log:       log,
		now:       time.Now,
	}
}

// RunOnce performs one control cycle: cooldown, cache, live fetch, decide,
// act, persist. Nothing is retried; the next scheduled run is the retry.
func (s *ControlService) RunOnce(ctx context.Context) (Result, error) {
	creds, err := s.settings.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load credentials: %w", err)
	}
	if !creds.Complete() {
		s.log.Infow("setup_required")
		return Result{Outcome: OutcomeSetupRequired}, nil
	}

	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load control state: %w", err)
	}
	now := s.now()
	if cd := CheckCooldown(state, now, s.policy); cd.Skip {
		s.log.Infow("cooldown_active",
			"last_action", state.LastAction,
			"remaining", cd.Remaining.Truncate(time.Second).String())
		return Result{Outcome: OutcomeCooldown, Cooldown: cd}, nil
	}

	if temp, ok := s.checkCache(now); ok {
		s.log.Infow("cached_temperature_in_range", "room_temperature", temp)
		return Result{Outcome: OutcomeCachedInRange, CachedTemp: temp}, nil
	}

	apps, err := s.gw.ListAppliances(ctx, creds.Token)
	if err != nil {
		return Result{}, s.gatewayFailure(ctx, err)
	}
	app, ok := findAppliance(apps, creds.ApplianceID)
	if !ok {
		return Result{}, s.resetAppliance(ctx, creds.ApplianceID)
	}
	if app.DeviceID == "" {
		return Result{}, fmt.Errorf("%w: appliance %s", ErrDeviceIDMissing, app.ID)
	}

	devices, err := s.gw.ListDevices(ctx, creds.Token)
	if err != nil {
		return Result{}, s.gatewayFailure(ctx, err)
	}
	dev, ok := findDevice(devices, app.DeviceID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, app.DeviceID)
	}
	if !dev.HasTemperature {
		return Result{}, fmt.Errorf("%w: device %s", ErrTelemetryMissing, dev.ID)
	}

	d := Decide(dev.RoomTemperature, app.SetTemperature, app.PowerOn, s.policy)
	res := Result{Decision: d, RoomTemperature: dev.RoomTemperature}
	s.log.Infow("live_state",
		"appliance", app.Nickname,
		"room_temperature", dev.RoomTemperature,
		"set_temperature", app.SetTemperature,
		"power_on", app.PowerOn,
		"band", d.Band)

	switch d.Action {
	case ActionRecordOff:
		at := s.now()
		if err := s.stateRepo.Save(ctx, models.ControlState{LastAction: models.ActionOffDetected, LastActionAt: at}); err != nil {
			return Result{}, fmt.Errorf("save control state: %w", err)
		}
		s.log.Infow("off_detected", "room_temperature", dev.RoomTemperature, "cooldown", s.policy.OffCooldown.String())
		s.record(ctx, models.ControlEvent{
			OccurredAt:  at,
			Type:        models.EventOffDetected,
			Description: d.Reason,
			Metadata: map[string]any{
				"appliance_id":     app.ID,
				"room_temperature": dev.RoomTemperature,
				"band":             d.Band,
			},
		})
		res.Outcome = OutcomeOffDetected

	case ActionLowerSetpoint, ActionRaiseSetpoint:
		if err := s.gw.SetTemperature(ctx, creds.Token, app.ID, d.Target); err != nil {
			return Result{}, s.gatewayFailure(ctx, err)
		}
		at := s.now()
		if err := s.stateRepo.Save(ctx, models.ControlState{LastAction: d.Target, LastActionAt: at}); err != nil {
			return Result{}, fmt.Errorf("save control state: %w", err)
		}
		s.log.Infow("setpoint_changed", "from", app.SetTemperature, "to", d.Target, "room_temperature", dev.RoomTemperature)
		s.record(ctx, models.ControlEvent{
			OccurredAt:  at,
			Type:        models.EventSetpointChanged,
			Description: fmt.Sprintf("set-point %s -> %s", app.SetTemperature, d.Target),
			Metadata: map[string]any{
				"appliance_id":     app.ID,
				"room_temperature": dev.RoomTemperature,
				"previous":         app.SetTemperature,
				"target":           d.Target,
			},
		})
		res.Outcome = OutcomeSetpointChanged

	default:
		s.log.Infow("no_change", "reason", d.Reason)
		res.Outcome = OutcomeNoChange
	}
	return res, nil
}

// checkCache reports the cached temperature and whether it is fresh and in
// band. Every cache problem falls through to the live path.
func (s *ControlService) checkCache(now time.Time) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	sample, err := s.cache.Latest(now)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrMalformed):
		s.log.Warnw("cache_unusable", "err", err)
		return 0, false
	default:
		s.log.Infow("cache_skipped", "err", err)
		return 0, false
	}
	if ClassifyBand(sample.Temperature, s.policy) != BandIn {
		s.log.Debugw("cache_out_of_range", "room_temperature", sample.Temperature)
		return sample.Temperature, false
	}
	return sample.Temperature, true
}

// gatewayFailure clears credentials on a 401 and passes every error through.
func (s *ControlService) gatewayFailure(ctx context.Context, err error) error {
	if !gateway.IsUnauthorized(err) {
		return err
	}
	s.log.Warnw("token_rejected", "err", err)
	if cerr := s.settings.ClearCredentials(ctx); cerr != nil {
		return errors.Join(err, fmt.Errorf("clear credentials: %w", cerr))
	}
	s.record(ctx, models.ControlEvent{
		Type:        models.EventAuthReset,
		Description: "token rejected; credentials cleared",
	})
	return err
}

func (s *ControlService) resetAppliance(ctx context.Context, applianceID string) error {
	notFound := fmt.Errorf("%w: %s", ErrApplianceNotFound, applianceID)
	if err := s.settings.ClearApplianceID(ctx); err != nil {
		return errors.Join(notFound, fmt.Errorf("clear appliance id: %w", err))
	}
	s.record(ctx, models.ControlEvent{
		Type:        models.EventApplianceReset,
		Description: "appliance " + applianceID + " no longer listed; appliance id cleared",
		Metadata:    map[string]any{"appliance_id": applianceID},
	})
	return notFound
}

func (s *ControlService) record(ctx context.Context, e models.ControlEvent) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	publishEvent(ctx, s.eventRepo, s.publisher, s.log, e)
}

// publishEvent journals and publishes an event. Both are best-effort.
func publishEvent(ctx context.Context, repo repository.EventRepo, pub mqtt.Publisher, log *logger.Logger, e models.ControlEvent) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	e.OccurredAt = e.OccurredAt.UTC()

	if err := repo.Append(ctx, e); err != nil {
		log.Warnw("journal_append_failed", "type", e.Type, "err", err)
	}
	if err := pub.Publish(e); err != nil {
		log.Warnw("mqtt_publish_failed", "type", e.Type, "err", err)
	}
}

func findAppliance(apps []models.Appliance, id string) (models.Appliance, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appliance{}, false
}

func findDevice(devices []models.Device, id string) (models.Device, bool) {
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return models.Device{}, false
}
