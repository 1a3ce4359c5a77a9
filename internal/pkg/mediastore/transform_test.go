package mediastore

import "testing"

func TestTransformationDefaults(t *testing.T) {
	got := Transformation(DefaultIngestOptions())
	want := "c_limit,w_2000,h_2000,q_auto,f_auto"
	if got != want {
		t.Fatalf("Transformation(...) = %q, want %q", got, want)
	}
}

func TestTransformationNoDimensions(t *testing.T) {
	got := Transformation(IngestOptions{Quality: "auto", Format: "auto"})
	want := "q_auto,f_auto"
	if got != want {
		t.Fatalf("Transformation(...) = %q, want %q", got, want)
	}
}

func TestTransformationEmpty(t *testing.T) {
	if got := Transformation(IngestOptions{}); got != "" {
		t.Fatalf("expected empty transformation, got %q", got)
	}
}
