package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestDefault_FullProfile(t *testing.T) {
	cfg := Default()
	if cfg.Profile != ProfileFull {
		t.Fatalf("profile=%q want %q", cfg.Profile, ProfileFull)
	}
	want := []string{"Activities", "Activity", "Lap", "Track"}
	if !reflect.DeepEqual(cfg.Input.Containers, want) {
		t.Fatalf("containers=%v want %v", cfg.Input.Containers, want)
	}
	if cfg.Options.NoExtensions || cfg.Options.NoAltitude {
		t.Fatalf("full profile must not suppress anything: %+v", cfg.Options)
	}
	if cfg.Options.AltitudeMode != AltitudeOmit || cfg.Options.TemperatureSource != TemperatureText {
		t.Fatalf("unexpected option defaults: %+v", cfg.Options)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestProfile_Plain(t *testing.T) {
	cfg, err := Profile(ProfilePlain)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if !cfg.Options.NoExtensions {
		t.Fatalf("plain profile must drop extensions")
	}
}

func TestProfile_Unknown(t *testing.T) {
	_, err := Profile("garmin")
	requireErrEq(t, err, `unknown profile "garmin" (want full or plain)`)
}

func TestLoad_EmptyFileIsFullProfile(t *testing.T) {
	path := writeTempConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("cfg=%+v want defaults", cfg)
	}
}

func TestLoad_OverridesProfile(t *testing.T) {
	path := writeTempConfig(t, `profile: plain
input:
  containers: [Folder, Track]
options:
  no_altitude: true
  altitude_mode: zero
  temperature_source: legacy
  progress: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Options.NoExtensions {
		t.Fatalf("expected plain base")
	}
	if !reflect.DeepEqual(cfg.Input.Containers, []string{"Folder", "Track"}) {
		t.Fatalf("containers=%v", cfg.Input.Containers)
	}
	if !cfg.Options.NoAltitude || cfg.Options.AltitudeMode != AltitudeZero {
		t.Fatalf("altitude options not applied: %+v", cfg.Options)
	}
	if cfg.Options.TemperatureSource != TemperatureLegacy {
		t.Fatalf("temperature_source=%q", cfg.Options.TemperatureSource)
	}
	if cfg.Options.Progress {
		t.Fatalf("progress should be off")
	}
	if cfg.Input.SampleTag != "Trackpoint" {
		t.Fatalf("sample tag default not applied: %q", cfg.Input.SampleTag)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "UnknownProfile",
			body: "profile: fancy\n",
			want: `unknown profile "fancy" (want full or plain)`,
		},
		{
			name: "AltitudeMode",
			body: "options:\n  altitude_mode: sea_level\n",
			want: `options.altitude_mode must be "omit" or "zero"`,
		},
		{
			name: "TemperatureSource",
			body: "options:\n  temperature_source: sensor\n",
			want: `options.temperature_source must be "text" or "legacy"`,
		},
		{
			name: "OutputExt",
			body: "output:\n  ext: gpx\n",
			want: "output.ext must start with '.'",
		},
		{
			name: "SameExt",
			body: "output:\n  ext: .tcx\n",
			want: "output.ext must differ from input.default_ext",
		},
		{
			name: "SampleTagAsContainer",
			body: "input:\n  containers: [Track, trackpoint]\n",
			want: `input.containers must not include the sample tag "Trackpoint"`,
		},
		{
			name: "EmptyContainer",
			body: "input:\n  containers: [Track, ' ']\n",
			want: "input.containers must not contain empty names",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.body)
			_, err := Load(path)
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
