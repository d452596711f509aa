package goAdmit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/goAdmit/identity"
)

func TestManagementGetSetRoundTrip(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	mgmt := NewManagement(engine)

	for _, name := range []string{
		ToggleRejectNullIdentity,
		ToggleRejectWithoutACLDefinition,
		ToggleForceShadowMode,
	} {
		got, err := mgmt.Get(name)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", name, err)
		}
		if got != "false" {
			t.Fatalf("Get(%s) = %q, expected initial false", name, got)
		}

		if err := mgmt.Set(name, "true"); err != nil {
			t.Fatalf("Set(%s) failed: %v", name, err)
		}
		got, err = mgmt.Get(name)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", name, err)
		}
		if got != "true" {
			t.Fatalf("Get(%s) = %q after Set true", name, got)
		}
	}

	if !engine.RejectNullIdentity() || !engine.RejectWithoutACLDefinition() || !engine.ForceShadowMode() {
		t.Fatal("string surface must drive the typed toggles")
	}
}

func TestManagementUnknownToggle(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	mgmt := NewManagement(engine)

	if _, err := mgmt.Get("noSuchToggle"); !errors.Is(err, ErrUnknownToggle) {
		t.Fatalf("expected ErrUnknownToggle, got %v", err)
	}
	if err := mgmt.Set("noSuchToggle", "true"); !errors.Is(err, ErrUnknownToggle) {
		t.Fatalf("expected ErrUnknownToggle, got %v", err)
	}
}

func TestManagementSetRejectsNonBoolean(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	mgmt := NewManagement(engine)

	if err := mgmt.Set(ToggleForceShadowMode, "maybe"); err == nil {
		t.Fatal("expected parse error for non-boolean value")
	}
	if engine.ForceShadowMode() {
		t.Fatal("failed Set must not flip the toggle")
	}
}

func TestClearACLConfigs(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	if engine.PermissionCount() == 0 {
		t.Fatal("expected seeded policy")
	}

	engine.ClearACLConfigs()

	if got := engine.PermissionCount(); got != 0 {
		t.Fatalf("clear must empty the index, got %d entries", got)
	}
	if !engine.ShadowEnabled() {
		t.Fatal("cleared policy must fail open")
	}
	if !engine.CheckConnectPermission(identity.Parse("user:mallory")).IsAccepted() {
		t.Fatal("post-clear connections must be accepted under shadow")
	}
	if got := counterValue(t, engine, MetricPolicyCleared); got != 1 {
		t.Fatalf("expected 1 clear, got %d", got)
	}
}

func TestClearACLConfigsHoldsAcrossUnchangedRefresh(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)

	engine.ClearACLConfigs()
	engine.refreshOnce(context.Background())

	// The stored bytes did not change, so the fingerprint still matches and
	// the operator's clear stands.
	if got := engine.PermissionCount(); got != 0 {
		t.Fatalf("unchanged document must not undo an operator clear, got %d entries", got)
	}
	if got := counterValue(t, engine, MetricPolicyUnchanged); got != 1 {
		t.Fatalf("expected the cycle to be skipped as unchanged, got %d", got)
	}
}

func TestClearACLConfigsUndoneByChangedDocument(t *testing.T) {
	engine, st := buildTestEngine(t, sampleDocument, nil)

	engine.ClearACLConfigs()

	st.put(testPath, sampleDocument+"\n")
	engine.refreshOnce(context.Background())

	if got := engine.PermissionCount(); got != 5 {
		t.Fatalf("changed bytes must re-apply the policy, got %d entries", got)
	}
}

func TestManagementHandler(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	srv := httptest.NewServer(NewManagement(engine).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/toggles/" + ToggleForceShadowMode)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body[:n])) != "false" {
		t.Fatalf("GET = %d %q", resp.StatusCode, body[:n])
	}

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/toggles/"+ToggleForceShadowMode, strings.NewReader("true"))
	if err != nil {
		t.Fatalf("build PUT failed: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT = %d", resp.StatusCode)
	}
	if !engine.ForceShadowMode() {
		t.Fatal("PUT must flip the toggle")
	}

	resp, err = http.Get(srv.URL + "/toggles/noSuchToggle")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown toggle GET = %d, expected 404", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/clear", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("POST /clear = %d", resp.StatusCode)
	}
	if engine.PermissionCount() != 0 {
		t.Fatal("POST /clear must empty the index")
	}

	resp, err = http.Get(srv.URL + "/clear")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /clear = %d, expected 405", resp.StatusCode)
	}
}
