package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cleberrangel/total-reports-api/internal/client"
	"github.com/cleberrangel/total-reports-api/internal/model"
)

type fakeUpstream struct {
	calls       int
	err         error
	gotFilter   model.CallFilter
	impersonate []string
}

func (f *fakeUpstream) Impersonate(ctx context.Context, companyID string) (model.ImpersonationCredential, error) {
	f.impersonate = append(f.impersonate, companyID)
	if f.err != nil {
		return model.ImpersonationCredential{}, f.err
	}
	return model.ImpersonationCredential{Value: "tok", CompanyID: companyID}, nil
}

func (f *fakeUpstream) FetchAllCalls(ctx context.Context, cred model.ImpersonationCredential, filter model.CallFilter) ([]model.CallRecord, error) {
	f.gotFilter = filter
	out := make([]model.CallRecord, f.calls)
	for i := range out {
		out[i] = model.CallRecord(`{}`)
	}
	return out, nil
}

func run(t *testing.T, up *fakeUpstream, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(func() (client.Upstream, error) { return up, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCount_JSON(t *testing.T) {
	up := &fakeUpstream{calls: 12}
	out, err := run(t, up, "count", "--company-id", "42", "--start-date", "2024-01-01", "--end-date", "2024-01-31", "--status", "answered", "--json")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var result model.ReportResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if result.TotalCalls != 12 || result.Status != "answered" || result.Company != "42" {
		t.Errorf("result = %+v", result)
	}
	if up.gotFilter.Status != "answered" || up.gotFilter.StartDate != "2024-01-01" {
		t.Errorf("filter = %+v", up.gotFilter)
	}
}

func TestCount_Table(t *testing.T) {
	up := &fakeUpstream{calls: 3}
	out, err := run(t, up, "count", "--company-id", "7", "--start-date", "a", "--end-date", "b")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, want := range []string{"EMPRESA", "7", model.StatusAll, "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCount_RequiredFlags(t *testing.T) {
	up := &fakeUpstream{}
	_, err := run(t, up, "count", "--company-id", "7")
	if err == nil {
		t.Fatal("expected error for missing flags")
	}
	if len(up.impersonate) != 0 {
		t.Errorf("upstream called without required flags")
	}
}

func TestCount_UpstreamError(t *testing.T) {
	up := &fakeUpstream{err: &model.UpstreamError{Op: model.OpImpersonate, StatusCode: 500, Body: "boom"}}
	_, err := run(t, up, "count", "--company-id", "7", "--start-date", "a", "--end-date", "b")
	if !errors.Is(err, model.ErrUpstreamExchange) {
		t.Fatalf("expected ErrUpstreamExchange, got %v", err)
	}
}
