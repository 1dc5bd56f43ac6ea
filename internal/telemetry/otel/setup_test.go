package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestNewProviders_EmptyEndpointIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, endpoint := range []string{"", "   "} {
		providers, err := NewProviders(ctx, endpoint, "paperbase", false)
		if err != nil {
			t.Fatalf("NewProviders(%q): %v", endpoint, err)
		}
		if providers.TracerProvider == nil || providers.MeterProvider == nil || providers.LoggerProvider == nil {
			t.Fatal("no-op providers must still be non-nil")
		}
		if err := providers.Shutdown(ctx); err != nil {
			t.Errorf("no-op shutdown: %v", err)
		}
		// Shutdown stays callable.
		if err := providers.Shutdown(ctx); err != nil {
			t.Errorf("second shutdown: %v", err)
		}
	}
}

func TestNewProviders_RejectsBadEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"unparseable", "://invalid"},
		{"bracket host", "http://[invalid"},
		{"missing host", "http://"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProviders(context.Background(), tc.endpoint, "paperbase", false); err == nil {
				t.Errorf("NewProviders(%q): want error", tc.endpoint)
			}
		})
	}
}

func TestSetGlobal(t *testing.T) {
	providers, err := NewProviders(context.Background(), "", "paperbase", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}

	oldTP := otel.GetTracerProvider()
	oldMP := otel.GetMeterProvider()
	defer func() {
		otel.SetTracerProvider(oldTP)
		otel.SetMeterProvider(oldMP)
	}()

	providers.SetGlobal()
	if otel.GetTracerProvider() == oldTP {
		t.Error("global TracerProvider not replaced")
	}
	if otel.GetMeterProvider() == oldMP {
		t.Error("global MeterProvider not replaced")
	}
}

func TestSetGlobal_NilProvidersLeaveGlobalsAlone(t *testing.T) {
	oldTP := otel.GetTracerProvider()
	oldMP := otel.GetMeterProvider()

	p := &Providers{Shutdown: func(context.Context) error { return nil }}
	p.SetGlobal()

	if otel.GetTracerProvider() != oldTP {
		t.Error("nil TracerProvider must not replace the global")
	}
	if otel.GetMeterProvider() != oldMP {
		t.Error("nil MeterProvider must not replace the global")
	}
}
