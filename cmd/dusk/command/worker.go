package command

import (
	"fmt"

	"github.com/duskhaven/go-dusk/internal/console"
	"github.com/duskhaven/go-dusk/internal/darkness"
	"github.com/duskhaven/go-dusk/internal/driver"
	"github.com/duskhaven/go-dusk/internal/listener"
	"github.com/duskhaven/go-dusk/internal/messaging"
	"github.com/duskhaven/go-dusk/internal/tag"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Embedded NATS server carries all engine events
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewEventPublisher(natsServer)

	// Load region definitions
	regions, err := cfg.Storage.BuildRegions()
	if err != nil {
		return nil, fmt.Errorf("loading regions: %w", err)
	}

	defaultProfile, err := cfg.Darkness.BuildDefaultProfile()
	if err != nil {
		return nil, fmt.Errorf("building darkness defaults: %w", err)
	}
	darknessManager := darkness.NewManager(regions, publisher,
		darkness.WithDefaultProfile(defaultProfile))

	tagSettings, err := cfg.Tag.BuildSettings()
	if err != nil {
		return nil, fmt.Errorf("building tag settings: %w", err)
	}
	tagManager := tag.NewManager(tagSettings, publisher)

	// Both engines advance on the shared tick
	var driverOpts []driver.DriverOpt
	tickInterval, err := cfg.tickInterval()
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if tickInterval > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(tickInterval))
	}

	d := driver.NewDriver([]driver.Manager{
		darknessManager,
		tagManager,
	}, driverOpts...)

	// Ops console listeners
	handler := console.NewHandler(darknessManager, tagManager)
	cm := listener.NewConnectionManager(handler)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    d,
		"listeners": &listeners,
	}, nil
}
