package cluster

import (
	"context"
	"reflect"
	"testing"
)

type fakeRay struct {
	calls [][]string
}

func (f *fakeRay) Run(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, args)
	return nil
}

func TestStartRejectsAmbiguousRole(t *testing.T) {
	for _, opts := range []StartOptions{
		{},
		{Head: true, Worker: true},
	} {
		ray := &fakeRay{}
		err := Start(context.Background(), ray, opts)
		if err == nil {
			t.Fatalf("opts %+v: expected validation error", opts)
		}
		if !IsValidation(err) {
			t.Fatalf("opts %+v: expected validation error, got %v", opts, err)
		}
		if len(ray.calls) != 0 {
			t.Fatalf("opts %+v: no subprocess should run, got %v", opts, ray.calls)
		}
	}
}

func TestStartWorkerRequiresAddress(t *testing.T) {
	ray := &fakeRay{}
	err := Start(context.Background(), ray, StartOptions{Worker: true})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ray.calls) != 0 {
		t.Fatalf("no subprocess should run, got %v", ray.calls)
	}
}

func TestStartWorkerStripsQuotes(t *testing.T) {
	ray := &fakeRay{}
	err := Start(context.Background(), ray, StartOptions{Worker: true, Address: `'10.0.0.5:6379'`})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	want := []string{"start", "--address=10.0.0.5:6379"}
	if len(ray.calls) != 1 || !reflect.DeepEqual(ray.calls[0], want) {
		t.Fatalf("unexpected argv: %v", ray.calls)
	}
}

func TestStartHeadDefaultsDashboardHost(t *testing.T) {
	ray := &fakeRay{}
	if err := Start(context.Background(), ray, StartOptions{Head: true}); err != nil {
		t.Fatalf("start: %v", err)
	}
	want := []string{"start", "--head", "--dashboard-host=0.0.0.0"}
	if len(ray.calls) != 1 || !reflect.DeepEqual(ray.calls[0], want) {
		t.Fatalf("unexpected argv: %v", ray.calls)
	}
}

func TestStartHeadCustomDashboardHost(t *testing.T) {
	ray := &fakeRay{}
	opts := StartOptions{Head: true, DashboardHost: "127.0.0.1"}
	if err := Start(context.Background(), ray, opts); err != nil {
		t.Fatalf("start: %v", err)
	}
	want := []string{"start", "--head", "--dashboard-host=127.0.0.1"}
	if !reflect.DeepEqual(ray.calls[0], want) {
		t.Fatalf("unexpected argv: %v", ray.calls[0])
	}
}

func TestStatus(t *testing.T) {
	ray := &fakeRay{}
	if err := Status(context.Background(), ray); err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(ray.calls) != 1 || !reflect.DeepEqual(ray.calls[0], []string{"status"}) {
		t.Fatalf("unexpected argv: %v", ray.calls)
	}
}
