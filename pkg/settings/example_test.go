package settings_test

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/benfogle/crossbuild/pkg/settings"
)

// ExampleResolver_Resolve resolves a frontend settings mapping into a
// validated cross-compile configuration.
func ExampleResolver_Resolve() {
	r := settings.NewResolver(zerolog.Nop(), settings.ResolverOptions{SkipPublish: true})

	cfg, err := r.Resolve(context.Background(), settings.Settings{
		"host":         "aarch64-unknown-linux-gnu",
		"sysroot":      "/opt/sysroots/aarch64",
		"include_dirs": []string{"/opt/sysroots/aarch64/usr/include"},
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(cfg.IsCrossCompiling(), cfg.Host.Arch, cfg.PlatformTag)
	// Output: true aarch64 auto
}

// ExampleCurrent reads the process-wide published configuration.
func ExampleCurrent() {
	defer settings.ResetCurrent()

	r := settings.NewResolver(zerolog.Nop(), settings.ResolverOptions{})
	if _, err := r.Resolve(context.Background(), settings.Settings{
		"host": "armv7-unknown-linux-gnueabihf",
	}); err != nil {
		panic(err)
	}

	fmt.Println(settings.Current().HostString())
	// Output: armv7-unknown-linux-gnueabihf
}
