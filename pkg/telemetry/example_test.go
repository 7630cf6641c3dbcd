package telemetry_test

import (
	"context"
	"fmt"
	"log"

	"github.com/benfogle/crossbuild/pkg/telemetry"
)

// ExampleNewTelemetry demonstrates bundling the full telemetry stack.
func ExampleNewTelemetry() {
	cfg := telemetry.DefaultConfig()
	cfg.Logging.Level = "error"

	tel, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer tel.Shutdown(context.Background())

	ctx := tel.WithContext(context.Background())
	telemetry.FromContext(ctx).Debug("settings resolution starting")

	fmt.Println("telemetry ready")
	// Output: telemetry ready
}

// ExampleEventPublisher_Subscribe shows subscribing to resolution events.
func ExampleEventPublisher_Subscribe() {
	ep, err := telemetry.NewEventPublisher(telemetry.EventsConfig{
		Enabled: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer ep.Shutdown(context.Background())

	ep.Subscribe(func(event telemetry.Event) {
		fmt.Println(event.Type, event.Host)
	}, telemetry.FilterByType(telemetry.EventTypeSettingsResolved))

	_ = ep.PublishSettingsResolved("build-1", "aarch64-unknown-linux-gnu", true)
	// Output: settings.resolved aarch64-unknown-linux-gnu
}
