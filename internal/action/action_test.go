// internal/action/action_test.go
package action

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_NoArgsSelectsDefaults(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}

	want := Set{
		FirmwareFile: "image.bin",
		Update:       true,
		UpdateReset:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default set mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DownloadFlag(t *testing.T) {
	got, err := Parse([]string{"-d", "fw-2.1.bin"})
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}

	if got.FirmwareFile != "fw-2.1.bin" || !got.Update {
		t.Fatalf("expected update of fw-2.1.bin, got %+v", got)
	}
	if got.Invalidate || got.FactoryReset || got.UpdateReset {
		t.Fatalf("unexpected extra actions: %+v", got)
	}
}

func TestParse_ResetFlagsLastWriterWins(t *testing.T) {
	got, err := Parse([]string{"-f", "-u"})
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}
	if got.FactoryReset || !got.UpdateReset {
		t.Fatalf("-u last: expected update reset only, got %+v", got)
	}

	got, err = Parse([]string{"-u", "-f"})
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}
	if !got.FactoryReset || got.UpdateReset {
		t.Fatalf("-f last: expected factory reset only, got %+v", got)
	}
}

func TestParse_CombinedInvocation(t *testing.T) {
	got, err := Parse([]string{"-e", "-d", "image.bin", "-u"})
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}

	want := Set{
		FirmwareFile: "image.bin",
		Update:       true,
		Invalidate:   true,
		UpdateReset:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("set mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownFlag(t *testing.T) {
	_, err := Parse([]string{"-x"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestParse_DownloadFlagWithoutValue(t *testing.T) {
	_, err := Parse([]string{"-d"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestUsage_ListsAllFlags(t *testing.T) {
	text := Usage("fwupdate")
	for _, flag := range []string{"-d", "-e", "-f", "-u"} {
		if !strings.Contains(text, flag) {
			t.Fatalf("usage text missing %s:\n%s", flag, text)
		}
	}
}
