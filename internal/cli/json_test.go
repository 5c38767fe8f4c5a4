package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestHandleError(t *testing.T) {
	t.Run("json mode prints envelope and still fails", func(t *testing.T) {
		prev := jsonOutput
		jsonOutput = true
		t.Cleanup(func() { jsonOutput = prev })

		var err error
		out := captureStdout(t, func() {
			err = handleError(ErrMenuNotFound, errors.New("menu not found: Main"), "Use 'navport menu list'")
		})

		if err == nil {
			t.Fatal("expected an error so the process exits non-zero")
		}
		if !isReported(err) {
			t.Errorf("expected a reported error, got %T", err)
		}

		var resp Response
		if jerr := json.Unmarshal([]byte(out), &resp); jerr != nil {
			t.Fatalf("invalid JSON: %v; out=%s", jerr, out)
		}
		if resp.OK || resp.Error == nil {
			t.Fatalf("expected error envelope, got %s", out)
		}
		if resp.Error.Code != ErrMenuNotFound || resp.Error.Suggestion == "" {
			t.Errorf("error = %+v", resp.Error)
		}
	})

	t.Run("text mode appends suggestion", func(t *testing.T) {
		prev := jsonOutput
		jsonOutput = false
		t.Cleanup(func() { jsonOutput = prev })

		base := errors.New("boom")
		err := handleError(ErrInternal, base, "try again")
		if !errors.Is(err, base) {
			t.Errorf("expected wrapped error, got %v", err)
		}
		if isReported(err) {
			t.Error("text mode errors must be printed by Execute")
		}
		if !strings.HasSuffix(err.Error(), "\n\ntry again") {
			t.Errorf("message = %q", err.Error())
		}
	})
}

func TestOutputSuccessWithWarnings(t *testing.T) {
	out := captureStdout(t, func() {
		outputSuccessWithWarnings(map[string]int{"created": 2},
			[]Warning{{Code: WarnItemSkipped, Message: "page not found: gone", Ref: "Main[4]"}},
			&Meta{Count: 1})
	})

	var resp struct {
		OK       bool           `json:"ok"`
		Data     map[string]int `json:"data"`
		Warnings []Warning      `json:"warnings"`
		Meta     Meta           `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.OK || resp.Data["created"] != 2 || resp.Meta.Count != 1 {
		t.Errorf("unexpected response: %s", out)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Ref != "Main[4]" {
		t.Errorf("warnings = %+v", resp.Warnings)
	}
}
