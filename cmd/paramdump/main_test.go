package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestTypes(t *testing.T) {
	code, out, errOut := runCmd(t, "types")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"1\turl\n", "5\thost_port\n", "10\tfile_error\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestEncodeDecodeHostPort(t *testing.T) {
	const want = "01" + "0000000b" + "6578616d706c652e636f6d" + "01bb"

	code, out, errOut := runCmd(t, "encode", "-type", "host_port", "-value", "example.com:443")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != want {
		t.Fatalf("encode: got %s want %s", strings.TrimSpace(out), want)
	}

	code, out, errOut = runCmd(t, "decode", "-type", "host_port", "-hex", want)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "example.com:443\n" {
		t.Fatalf("decode: %q", out)
	}

	code, _, errOut = runCmd(t, "decode", "-type", "host_port", "-hex", want[:len(want)-2])
	if code != 1 || !strings.Contains(errOut, "truncated") {
		t.Fatalf("truncated payload: exit %d, %q", code, errOut)
	}
}

func TestDescribeLimit(t *testing.T) {
	code, out, _ := runCmd(t, "encode", "-type", "url", "-value", "https://example.com/"+strings.Repeat("a", 200))
	if code != 0 {
		t.Fatalf("encode exit %d", code)
	}
	code, desc, errOut := runCmd(t, "describe", "-type", "url", "-limit", "16", "-hex", strings.TrimSpace(out))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if d := strings.TrimSpace(desc); len(d) > 16+len("...") || !strings.HasSuffix(d, "...") {
		t.Fatalf("describe not bounded: %q", d)
	}
}

func TestRequestStatusRoundTrip(t *testing.T) {
	code, out, _ := runCmd(t, "encode", "-type", "request_status", "-value", "failed:-7")
	if code != 0 {
		t.Fatalf("encode exit %d", code)
	}
	code, desc, errOut := runCmd(t, "decode", "-type", "request_status", "-hex", strings.TrimSpace(out))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(desc, "failed") || !strings.Contains(desc, "-7") {
		t.Fatalf("unexpected %q", desc)
	}
}

func TestLoadTimingMissingOffsetsStayUnset(t *testing.T) {
	code, out, errOut := runCmd(t, "encode", "-type", "load_timing",
		"-value", `{"Base":"2024-01-01T00:00:00Z","DNSStart":2000000}`)
	if code != 0 {
		t.Fatalf("encode exit %d: %s", code, errOut)
	}
	code, desc, errOut := runCmd(t, "decode", "-type", "load_timing", "-hex", strings.TrimSpace(out))
	if code != 0 {
		t.Fatalf("decode exit %d: %s", code, errOut)
	}
	if desc != "{base: 2024-01-01T00:00:00Z, dns_start: 2ms}\n" {
		t.Fatalf("unexpected %q", desc)
	}

	code, out, _ = runCmd(t, "encode", "-type", "load_timing", "-value", "null")
	if code != 0 {
		t.Fatalf("null encode exit %d", code)
	}
	if _, desc, _ = runCmd(t, "decode", "-type", "load_timing", "-hex", strings.TrimSpace(out)); desc != "(null)\n" {
		t.Fatalf("null: %q", desc)
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, _ := runCmd(t); code != 2 {
		t.Fatalf("missing command should exit 2, got %d", code)
	}
	if code, _, _ := runCmd(t, "bogus"); code != 2 {
		t.Fatalf("unknown command should exit 2, got %d", code)
	}
	if code, _, _ := runCmd(t, "encode"); code != 2 {
		t.Fatalf("missing -type should exit 2, got %d", code)
	}
	if code, _, errOut := runCmd(t, "encode", "-type", "nope", "-value", "x"); code != 1 || !strings.Contains(errOut, "unknown type") {
		t.Fatalf("unknown type: exit %d %q", code, errOut)
	}
}

func TestCaptureExportAndShowImport(t *testing.T) {
	for _, prov := range []string{"ristretto", "bigcache"} {
		t.Run(prov, func(t *testing.T) {
			cfg := writeConfig(t, "[capture]\nprovider = \""+prov+"\"\n")
			export := filepath.Join(t.TempDir(), "net.capture")

			code, out, errOut := runCmd(t, "-config", cfg, "capture", "-channel", "net", "-type", "host_port", "-value", "example.com:443", "-export", export)
			if code != 0 {
				t.Fatalf("capture exit %d: %s", code, errOut)
			}
			if !strings.HasPrefix(out, "net#1\t") || !strings.Contains(out, "\thost_port\texample.com:443") {
				t.Fatalf("unexpected capture output %q", out)
			}

			code, out, errOut = runCmd(t, "-config", cfg, "show", "-channel", "net", "-import", export)
			if code != 0 {
				t.Fatalf("show exit %d: %s", code, errOut)
			}
			if !strings.Contains(out, "net#1\t") || !strings.Contains(out, "example.com:443") {
				t.Fatalf("unexpected show output %q", out)
			}

			code, _, _ = runCmd(t, "-config", cfg, "show", "-channel", "net")
			if code != 1 {
				t.Fatalf("a fresh in-process store has no records, exit %d", code)
			}
		})
	}
}
