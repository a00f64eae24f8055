package main

import (
	"database/sql"
	"fmt"
	"os"

	"aircon_controller/internal/cache"
	"aircon_controller/internal/config"
	"aircon_controller/internal/gateway"
	"aircon_controller/internal/logger"
	"aircon_controller/internal/mqtt"
	"aircon_controller/internal/repository"
	"aircon_controller/internal/repository/db"
	"aircon_controller/internal/service"

	"github.com/spf13/afero"
)

// app holds everything a command needs.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *sql.DB
	services  *service.Service
	publisher mqtt.Publisher
}

// Swapped in tests.
var (
	newGateway = func(c config.APIConfig) gateway.Gateway {
		return gateway.NewRemo(c.BaseURL, c.Timeout)
	}
	dialPublisher = func(c config.MQTTConfig) (mqtt.Publisher, error) {
		rp, err := mqtt.NewRealPublisher(c.Broker, c.ClientID, c.Topic)
		if err != nil {
			return nil, err
		}
		return rp, nil
	}
)

// newApp loads configuration, opens the database and wires the services.
// withMQTT enables the decision publisher when a broker is configured; it
// connects on the first published event.
func newApp(withMQTT bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, reportEarly(fmt.Errorf("load config: %w", err))
	}

	log := logger.Get(cfg.Log.Level)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Errorw("sqlite_init_failed", "path", cfg.DB.Path, "err", err)
		return nil, err
	}

	var pub mqtt.Publisher = mqtt.NoopPublisher{}
	if withMQTT && cfg.MQTT.Broker != "" {
		mqttCfg := cfg.MQTT
		pub = mqtt.NewLazyPublisher(func() (mqtt.Publisher, error) {
			p, err := dialPublisher(mqttCfg)
			if err != nil {
				log.Warnw("mqtt_connect_failed", "broker", mqttCfg.Broker, "err", err)
			}
			return p, err
		})
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Gateway:   newGateway(cfg.API),
		Cache:     cache.NewReader(afero.NewOsFs(), cfg.Cache.Path, cfg.Cache.MaxAge),
		Publisher: pub,
		Policy:    policyFromConfig(cfg.Control),
		Log:       log,
	})

	return &app{cfg: cfg, log: log, db: conn, services: services, publisher: pub}, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		a.log.Warnw("mqtt_close_failed", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Errorw("sqlite_close_failed", "err", err)
	}
	_ = a.log.Sync()
}

func policyFromConfig(c config.ControlConfig) service.Policy {
	return service.Policy{
		RangeLow:       c.RangeLow,
		RangeHigh:      c.RangeHigh,
		LowSetpoint:    c.LowSetpoint,
		HighSetpoint:   c.HighSetpoint,
		ChangeCooldown: c.ChangeCooldown,
		OffCooldown:    c.OffCooldown,
	}
}

// reportEarly logs errors that happen before the configured logger exists.
func reportEarly(err error) error {
	l := logger.New(logger.InfoLevel, os.Stderr)
	l.Errorw("startup_failed", "err", err)
	_ = l.Sync()
	return err
}
