package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xdg/appbridge/internal/bridge"
	"github.com/xdg/appbridge/internal/config"
	"github.com/xdg/appbridge/internal/hostexec"
)

func TestExec_Success(t *testing.T) {
	host := &fakeHost{reply: completed("42\n", 0)}
	home := setupEnv(t, host)
	script := writeScriptFile(t, "app.activeDocument.pages.length")

	stdout, stderr, err := runCmd(t, "", "exec", script)
	if err != nil {
		t.Fatalf("exec returned error: %v (stderr %q)", err, stderr)
	}
	if stdout != "42\n" {
		t.Errorf("stdout = %q, want %q", stdout, "42\n")
	}
	if !reflect.DeepEqual(host.identities, config.DefaultTargets[:1]) {
		t.Errorf("identities tried = %v, want only the first default", host.identities)
	}
	if host.scripts[0] != "app.activeDocument.pages.length" {
		t.Errorf("script body = %q", host.scripts[0])
	}

	auditData, err := os.ReadFile(filepath.Join(home, ".local/state/appbridge/audit.log"))
	if err != nil {
		t.Fatalf("audit log not written: %v", err)
	}
	if !strings.Contains(string(auditData), "SUCCESS") {
		t.Errorf("audit log missing SUCCESS event:\n%s", auditData)
	}
}

func TestExec_ScriptFromStdin(t *testing.T) {
	host := &fakeHost{reply: completed("ok", 0)}
	setupEnv(t, host)

	for _, args := range [][]string{{"exec"}, {"exec", "-"}} {
		host.scripts = nil
		stdout, _, err := runCmd(t, "app.name", args...)
		if err != nil {
			t.Fatalf("%v returned error: %v", args, err)
		}
		if stdout != "ok\n" {
			t.Errorf("%v stdout = %q, want %q", args, stdout, "ok\n")
		}
		if len(host.scripts) != 1 || host.scripts[0] != "app.name" {
			t.Errorf("%v scripts = %q, want [app.name]", args, host.scripts)
		}
	}
}

func TestExec_NoScript(t *testing.T) {
	setupEnv(t, &fakeHost{reply: completed("", 0)})

	_, _, err := runCmd(t, "", "exec")
	if !errors.Is(err, errNoScript) {
		t.Errorf("exec with empty stdin = %v, want errNoScript", err)
	}
}

func TestExec_MissingFile(t *testing.T) {
	setupEnv(t, &fakeHost{reply: completed("", 0)})

	_, _, err := runCmd(t, "", "exec", filepath.Join(t.TempDir(), "nope.jsx"))
	if err == nil || !strings.Contains(err.Error(), "failed to read script") {
		t.Errorf("exec missing file = %v", err)
	}
}

func TestExec_ScriptError(t *testing.T) {
	host := &fakeHost{reply: completed("ERROR|2|Object is not valid.", 0)}
	setupEnv(t, host)

	stdout, stderr, err := runCmd(t, "x", "exec")
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitScriptError {
		t.Fatalf("exec error = %v, want exit code %d", err, ExitScriptError)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Object is not valid.") {
		t.Errorf("stderr = %q, want script message", stderr)
	}
	if len(host.identities) != 1 {
		t.Errorf("script error should stop the search, tried %v", host.identities)
	}
}

func TestExec_TargetFlagsExhausted(t *testing.T) {
	host := &fakeHost{reply: func(identity string) hostexec.Invocation {
		return hostexec.Invocation{Status: hostexec.StatusCompleted, ExitCode: 1, Stderr: identity + " got an error: not running"}
	}}
	setupEnv(t, host)

	_, stderr, err := runCmd(t, "x", "exec", "--target", "Adobe InDesign 2024", "--target", "Adobe InDesign 2023")
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("exec error = %v, want exit code %d", err, ExitFailure)
	}

	want := []string{"Adobe InDesign 2024", "Adobe InDesign 2023"}
	if !reflect.DeepEqual(host.identities, want) {
		t.Errorf("identities = %v, want %v", host.identities, want)
	}
	if !strings.Contains(stderr, "Adobe InDesign 2023 got an error") {
		t.Errorf("stderr = %q, want last diagnostic", stderr)
	}
}

func TestExec_Timeout(t *testing.T) {
	host := &fakeHost{reply: completed("1", 0)}
	setupEnv(t, host)
	writeConfigFile(t, "timeout: 5s\n")

	if _, _, err := runCmd(t, "x", "exec"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCmd(t, "x", "exec", "--timeout", "250ms"); err != nil {
		t.Fatal(err)
	}

	want := []time.Duration{5 * time.Second, 250 * time.Millisecond}
	if !reflect.DeepEqual(host.timeouts, want) {
		t.Errorf("timeouts = %v, want %v", host.timeouts, want)
	}
}

func TestExec_InvalidTimeout(t *testing.T) {
	for _, timeout := range []string{"-1s", "500us", "999us", "1ns"} {
		t.Run(timeout, func(t *testing.T) {
			host := &fakeHost{reply: completed("1", 0)}
			setupEnv(t, host)

			_, _, err := runCmd(t, "x", "exec", "--timeout", timeout)
			if err == nil || !strings.Contains(err.Error(), "--timeout must be at least 1ms") {
				t.Errorf("exec --timeout %s = %v", timeout, err)
			}
			if len(host.identities) != 0 {
				t.Errorf("host invoked with --timeout %s", timeout)
			}
		})
	}
}

func TestExec_MillisecondTimeout(t *testing.T) {
	host := &fakeHost{reply: completed("1", 0)}
	setupEnv(t, host)

	if _, _, err := runCmd(t, "x", "exec", "--timeout", "1ms"); err != nil {
		t.Fatal(err)
	}
	if len(host.timeouts) != 1 || host.timeouts[0] != time.Millisecond {
		t.Errorf("timeouts = %v, want [1ms]", host.timeouts)
	}
}

func TestExec_JSON(t *testing.T) {
	setupEnv(t, &fakeHost{reply: completed("done", 0)})

	stdout, _, err := runCmd(t, "x", "exec", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var res bridge.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if !res.Success || res.Result != "done" {
		t.Errorf("result = %+v", res)
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Status != "success" {
		t.Errorf("attempts = %+v", res.Attempts)
	}
}

func TestExec_MetricsTextfile(t *testing.T) {
	setupEnv(t, &fakeHost{reply: completed("1", 0)})
	prom := filepath.Join(t.TempDir(), "appbridge.prom")
	writeConfigFile(t, "metrics:\n  textfile: "+prom+"\n")

	if _, _, err := runCmd(t, "x", "exec"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `appbridge_requests_total{status="success"} 1`) {
		t.Errorf("metrics textfile missing request counter:\n%s", data)
	}
}

func TestExec_ScratchDirLeftEmpty(t *testing.T) {
	setupEnv(t, &fakeHost{reply: completed("ERROR|-2700|boom", 0)})
	scratch := t.TempDir()
	writeConfigFile(t, "scratch:\n  dir: "+scratch+"\n")

	_, _, _ = runCmd(t, "x", "exec")

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir has %d leftover files", len(entries))
	}
}

func TestReadScript_File(t *testing.T) {
	path := writeScriptFile(t, "body")

	got, err := readScript([]string{path}, strings.NewReader("ignored"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "body" {
		t.Errorf("readScript() = %q, want %q", got, "body")
	}
}

func TestExec_TemplateVars(t *testing.T) {
	host := &fakeHost{reply: completed("1", 0)}
	setupEnv(t, host)
	script := writeScriptFile(t, `app.documents.itemByName({{ lit .doc }}).close();`)

	_, _, err := runCmd(t, "", "exec", script, "--var", `doc=a"); app.quit(); ("`)
	if err != nil {
		t.Fatal(err)
	}
	want := `app.documents.itemByName("a\"); app.quit(); (\"").close();`
	if len(host.scripts) != 1 || host.scripts[0] != want {
		t.Errorf("rendered script = %q, want %q", host.scripts, want)
	}
}

func TestExec_TemplateVarErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		vars    []string
		wantErr string
	}{
		{"missing equals", "{{ lit .a }}", []string{"a"}, "NAME=VALUE"},
		{"empty name", "{{ lit .a }}", []string{"=x"}, "NAME=VALUE"},
		{"undefined variable", "{{ lit .b }}", []string{"a=1"}, "render script template"},
		{"bad template", "{{ lit .a ", []string{"a=1"}, "parse script template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{reply: completed("1", 0)}
			setupEnv(t, host)

			args := []string{"exec"}
			for _, v := range tt.vars {
				args = append(args, "--var", v)
			}
			_, _, err := runCmd(t, tt.body, args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("exec = %v, want error containing %q", err, tt.wantErr)
			}
			if len(host.identities) != 0 {
				t.Errorf("host invoked despite template error")
			}
		})
	}
}
