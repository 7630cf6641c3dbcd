package settings

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/benfogle/crossbuild/pkg/triple"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	t.Cleanup(ResetCurrent)
	return NewResolver(zerolog.Nop(), ResolverOptions{})
}

func TestResolveDefaults(t *testing.T) {
	r := newTestResolver(t)

	cfg, err := r.Resolve(context.Background(), Settings{})
	if err != nil {
		t.Fatalf("Resolve({}) failed: %v", err)
	}

	if cfg.IsCrossCompiling() {
		t.Error("empty settings must resolve to a native build")
	}
	if cfg.Host != nil {
		t.Errorf("Host = %+v, want nil", cfg.Host)
	}
	if cfg.HostRaw != NativeHost {
		t.Errorf("HostRaw = %q, want %q", cfg.HostRaw, NativeHost)
	}
	if cfg.PlatformTag != DefaultPlatformTag {
		t.Errorf("PlatformTag = %q, want %q", cfg.PlatformTag, DefaultPlatformTag)
	}
	if cfg.HostPrefix != "" || cfg.Sysroot != "" {
		t.Errorf("HostPrefix/Sysroot must default to absent, got %q/%q", cfg.HostPrefix, cfg.Sysroot)
	}
	for name, list := range map[string][]string{
		"include_dirs": cfg.IncludeDirs,
		"lib_dirs":     cfg.LibDirs,
		"cflags":       cfg.CFlags,
		"cxxflags":     cfg.CXXFlags,
		"ldflags":      cfg.LDFlags,
	} {
		if list == nil || len(list) != 0 {
			t.Errorf("%s must default to an empty list, got %#v", name, list)
		}
	}
	if cfg.CC != nil || cfg.CXX != nil {
		t.Errorf("cc/c++ must default to absent, got %#v/%#v", cfg.CC, cfg.CXX)
	}
}

func TestResolveCross(t *testing.T) {
	r := newTestResolver(t)

	cfg, err := r.Resolve(context.Background(), Settings{
		"host":         "aarch64-linux-android",
		"include_dirs": []string{"/sysroot/usr/include"},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if !cfg.IsCrossCompiling() {
		t.Error("explicit host must mean cross-compiling")
	}
	want := triple.HostTriple{Arch: "aarch64", Vendor: "unknown", Sys: "linux", ABI: "android"}
	if *cfg.Host != want {
		t.Errorf("Host = %+v, want %+v", *cfg.Host, want)
	}
	if !reflect.DeepEqual(cfg.IncludeDirs, []string{"/sysroot/usr/include"}) {
		t.Errorf("IncludeDirs = %#v", cfg.IncludeDirs)
	}
	if cfg.PlatformTag != DefaultPlatformTag {
		t.Errorf("PlatformTag = %q, want default %q", cfg.PlatformTag, DefaultPlatformTag)
	}
}

func TestResolveNativeSentinel(t *testing.T) {
	r := newTestResolver(t)

	cfg, err := r.Resolve(context.Background(), Settings{"host": "native"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.IsCrossCompiling() {
		t.Error(`host "native" must not be cross-compiling`)
	}
}

func TestResolveNullCrossCompile(t *testing.T) {
	r := newTestResolver(t)

	// The build machine's own triple is still cross-compiling when given
	// explicitly; only the literal sentinel means native.
	native := triple.Native().String()
	cfg, err := r.Resolve(context.Background(), Settings{"host": native})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !cfg.IsCrossCompiling() {
		t.Errorf("host %q must count as cross-compiling", native)
	}
}

func TestResolveScalarForListKey(t *testing.T) {
	r := newTestResolver(t)

	for _, key := range []string{"cflags", "cxxflags", "ldflags", "include_dirs", "lib_dirs", "cc", "c++"} {
		t.Run(key, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), Settings{key: "-O2"})
			if err == nil {
				t.Fatalf("scalar value for %q must fail", key)
			}
			if !IsMalformedConfig(err) {
				t.Errorf("error = %v, want MalformedConfigError", err)
			}
		})
	}
}

func TestResolveListShapes(t *testing.T) {
	r := newTestResolver(t)

	// Decoded JSON/YAML hands over []any; direct callers use []string.
	cfg, err := r.Resolve(context.Background(), Settings{
		"cflags": []any{"-O2", "-g"},
		"cc":     []string{"aarch64-linux-gnu-gcc", "--sysroot=/sr"},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.CFlags, []string{"-O2", "-g"}) {
		t.Errorf("CFlags = %#v", cfg.CFlags)
	}
	if !reflect.DeepEqual(cfg.CC, []string{"aarch64-linux-gnu-gcc", "--sysroot=/sr"}) {
		t.Errorf("CC = %#v", cfg.CC)
	}

	_, err = r.Resolve(context.Background(), Settings{"cflags": []any{"-O2", 7}})
	if !IsMalformedConfig(err) {
		t.Errorf("non-string list element: error = %v, want MalformedConfigError", err)
	}
}

func TestResolveScalarKeyWrongType(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(context.Background(), Settings{"sysroot": 42})
	if !IsMalformedConfig(err) {
		t.Errorf("non-string sysroot: error = %v, want MalformedConfigError", err)
	}
}

func TestResolveInvalidHostTriple(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(context.Background(), Settings{"host": "a-b-c-d-e"})
	if err == nil {
		t.Fatal("unparseable host triple must fail")
	}
	if !IsMalformedConfig(err) {
		t.Errorf("error = %v, want MalformedConfigError", err)
	}
	var tripleErr *triple.InvalidTripleError
	if !errors.As(err, &tripleErr) {
		t.Errorf("error chain must carry the triple parse failure, got %v", err)
	}
}

func TestResolvePreservesUnknownKeys(t *testing.T) {
	r := newTestResolver(t)

	cfg, err := r.Resolve(context.Background(), Settings{
		"meson:cross_file": "/cfg/aarch64.ini",
		"frobnicate":       "yes",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Extra["meson:cross_file"] != "/cfg/aarch64.ini" {
		t.Errorf("namespaced key not preserved: %#v", cfg.Extra)
	}
	if cfg.Extra["frobnicate"] != "yes" {
		t.Errorf("unknown key not preserved: %#v", cfg.Extra)
	}
}

func TestIsCrossCompilingPredicate(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want bool
	}{
		{name: "empty settings", s: Settings{}, want: false},
		{name: "native sentinel", s: Settings{"host": "native"}, want: false},
		{name: "explicit host", s: Settings{"host": "x86_64-unknown-linux-gnu"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCrossCompiling(tt.s); got != tt.want {
				t.Errorf("IsCrossCompiling(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestCurrentPublishing(t *testing.T) {
	t.Cleanup(ResetCurrent)
	ResetCurrent()

	if Current() != nil {
		t.Fatal("no configuration resolved yet, Current() must be nil")
	}

	r := NewResolver(zerolog.Nop(), ResolverOptions{})
	first, err := r.Resolve(context.Background(), Settings{"host": "armv7-unknown-linux-gnueabihf"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if Current() != first {
		t.Error("Resolve must publish the new configuration")
	}

	second, err := r.Resolve(context.Background(), Settings{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if Current() != second {
		t.Error("Resolve must replace the published configuration wholesale")
	}

	skipper := NewResolver(zerolog.Nop(), ResolverOptions{SkipPublish: true})
	if _, err := skipper.Resolve(context.Background(), Settings{"host": "native"}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if Current() != second {
		t.Error("SkipPublish resolution must not disturb the published configuration")
	}
}
