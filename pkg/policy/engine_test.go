package policy

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/benfogle/crossbuild/pkg/settings"
	"github.com/benfogle/crossbuild/pkg/triple"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	eng, err := NewEngine(logger, EngineOptions{})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func crossConfig(t *testing.T) *settings.Config {
	t.Helper()
	host := triple.MustParse("aarch64-unknown-linux-gnu")
	return &settings.Config{
		Host:        &host,
		HostRaw:     host.String(),
		Sysroot:     "/opt/sysroots/aarch64",
		PlatformTag: settings.DefaultPlatformTag,
		IncludeDirs: []string{},
		LibDirs:     []string{},
		CFlags:      []string{},
		CXXFlags:    []string{},
		LDFlags:     []string{},
		ResolvedAt:  time.Now(),
	}
}

func nativeConfig(t *testing.T) *settings.Config {
	t.Helper()
	return &settings.Config{
		HostRaw:     settings.NativeHost,
		PlatformTag: settings.DefaultPlatformTag,
		IncludeDirs: []string{},
		LibDirs:     []string{},
		CFlags:      []string{},
		CXXFlags:    []string{},
		LDFlags:     []string{},
		ResolvedAt:  time.Now(),
	}
}

func TestNewEngine(t *testing.T) {
	eng := testEngine(t)

	policies := eng.ListPolicies()
	if len(policies) == 0 {
		t.Fatal("No built-in policies loaded")
	}

	expectedPolicies := []string{
		"sysroot-recommended",
		"build-machine-paths",
		"native-arch-flags",
		"platform-tag-override",
	}

	for _, expected := range expectedPolicies {
		found := false
		for _, p := range policies {
			if p.Name == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected built-in policy not found: %s", expected)
		}
	}
}

func TestEvaluate_CleanCrossConfig(t *testing.T) {
	eng := testEngine(t)

	result, err := eng.Evaluate(context.Background(), crossConfig(t))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !result.Allowed {
		t.Errorf("Expected clean config to be allowed, got violations: %v", result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("Expected no violations, got %d", len(result.Violations))
	}
}

func TestEvaluate_SysrootRecommended(t *testing.T) {
	eng := testEngine(t)

	cfg := crossConfig(t)
	cfg.Sysroot = ""

	result, err := eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	// A missing sysroot is a warning, not a blocker.
	if !result.Allowed {
		t.Error("Expected config to remain allowed")
	}

	found := false
	for _, v := range result.Violations {
		if v.Policy == "sysroot-recommended" {
			found = true
			if v.Severity != SeverityWarning {
				t.Errorf("Expected warning severity, got %s", v.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected sysroot-recommended violation")
	}
}

func TestEvaluate_BuildMachinePaths(t *testing.T) {
	eng := testEngine(t)

	tests := []struct {
		name   string
		mutate func(*settings.Config)
	}{
		{
			name: "build machine include dir",
			mutate: func(cfg *settings.Config) {
				cfg.IncludeDirs = []string{"/usr/include"}
			},
		},
		{
			name: "build machine lib dir",
			mutate: func(cfg *settings.Config) {
				cfg.LibDirs = []string{"/usr/local/lib/foo"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := crossConfig(t)
			tt.mutate(cfg)

			result, err := eng.Evaluate(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			if result.Allowed {
				t.Error("Expected config to be rejected")
			}

			found := false
			for _, v := range result.Violations {
				if v.Policy == "build-machine-paths" && v.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected build-machine-paths error, got: %v", result.Violations)
			}
		})
	}
}

func TestEvaluate_NativeArchFlags(t *testing.T) {
	eng := testEngine(t)

	cfg := crossConfig(t)
	cfg.CFlags = []string{"-O2", "-march=native"}

	result, err := eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Allowed {
		t.Error("Expected config to be rejected")
	}

	found := false
	for _, v := range result.Violations {
		if v.Policy == "native-arch-flags" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected native-arch-flags violation, got: %v", result.Violations)
	}
}

func TestEvaluate_NativeArchFlagsIgnoredForNativeBuild(t *testing.T) {
	eng := testEngine(t)

	cfg := nativeConfig(t)
	cfg.CFlags = []string{"-march=native"}

	result, err := eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	for _, v := range result.Violations {
		if v.Policy == "native-arch-flags" {
			t.Error("native-arch-flags should not fire on a native build")
		}
	}
}

func TestEvaluate_PlatformTagOverride(t *testing.T) {
	eng := testEngine(t)

	cfg := nativeConfig(t)
	cfg.PlatformTag = "linux_aarch64"

	result, err := eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	found := false
	for _, v := range result.Violations {
		if v.Policy == "platform-tag-override" {
			found = true
			if v.Severity != SeverityWarning {
				t.Errorf("Expected warning severity, got %s", v.Severity)
			}
		}
	}
	if !found {
		t.Errorf("Expected platform-tag-override violation, got: %v", result.Violations)
	}
}

func TestEnableDisablePolicy(t *testing.T) {
	eng := testEngine(t)

	if err := eng.DisablePolicy("sysroot-recommended"); err != nil {
		t.Fatalf("DisablePolicy failed: %v", err)
	}

	cfg := crossConfig(t)
	cfg.Sysroot = ""

	result, err := eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	for _, v := range result.Violations {
		if v.Policy == "sysroot-recommended" {
			t.Error("Disabled policy should not produce violations")
		}
	}

	if err := eng.EnablePolicy("sysroot-recommended"); err != nil {
		t.Fatalf("EnablePolicy failed: %v", err)
	}

	result, err = eng.Evaluate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Policy == "sysroot-recommended" {
			found = true
		}
	}
	if !found {
		t.Error("Re-enabled policy should produce violations again")
	}
}

func TestGetPolicy(t *testing.T) {
	eng := testEngine(t)

	p, err := eng.GetPolicy("build-machine-paths")
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if p.Severity != SeverityError {
		t.Errorf("Expected error severity, got %s", p.Severity)
	}

	if _, err := eng.GetPolicy("no-such-policy"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}
