package stats

import (
	"math"
	"testing"
)

func TestFisherThreshold_Bimodal(t *testing.T) {
	var values []float32
	for i := 0; i < 100; i++ {
		values = append(values, 10+float32(i%5))
		values = append(values, 200+float32(i%7))
	}

	th := FisherThreshold(values)
	if th <= 14 || th >= 200 {
		t.Errorf("threshold %v should separate the two modes", th)
	}
}

func TestFisherThreshold_Degenerate(t *testing.T) {
	if got := FisherThreshold(nil); got != 0 {
		t.Errorf("empty input: got %v", got)
	}
	if got := FisherThreshold([]float32{3, 3, 3}); got != 3 {
		t.Errorf("constant input: got %v", got)
	}
}

func TestTwoMeansSplit(t *testing.T) {
	got := TwoMeansSplit([]float64{1, 2, 3, 101, 102, 103})
	if math.Abs(got-52) > 1e-6 {
		t.Errorf("TwoMeansSplit = %v, want 52", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		if got := Median(tt.in); got != tt.want {
			t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegression(t *testing.T) {
	var r Regression
	for x := 0.0; x < 10; x++ {
		r.Add(x, 3+2*x)
	}
	a, b := r.Fit()
	if math.Abs(a-3) > 1e-9 || math.Abs(b-2) > 1e-9 {
		t.Errorf("Fit = %v, %v; want 3, 2", a, b)
	}
	if got := r.Predict(20); math.Abs(got-43) > 1e-9 {
		t.Errorf("Predict(20) = %v", got)
	}

	r.Reset()
	r.Add(5, 1)
	r.Add(5, 3)
	a, b = r.Fit()
	if a != 2 || b != 0 {
		t.Errorf("vertical data should fall back to mean, got %v, %v", a, b)
	}
}

func TestSmooth_PreservesMass(t *testing.T) {
	xs := make([]float64, 50)
	xs[25] = 10
	out := Smooth(xs, 2)

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-10) > 1e-6 {
		t.Errorf("mass not preserved: %v", sum)
	}
	if out[25] >= 10 || out[25] <= out[20] {
		t.Error("smoothing should spread the spike")
	}
}

func TestLocalMaxima(t *testing.T) {
	xs := []float64{0, 1, 3, 1, 0, 2, 2, 2, 0, 5}
	got := LocalMaxima(xs, 1.5)
	want := []int{2, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("LocalMaxima = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LocalMaxima = %v, want %v", got, want)
		}
	}

	if peaks := LocalMaxima(make([]float64, 5), 0); len(peaks) != 0 {
		t.Errorf("flat zero input should have no maxima, got %v", peaks)
	}
}

func TestCircularDistance(t *testing.T) {
	if got := CircularDistance(350, 10); got != 20 {
		t.Errorf("CircularDistance(350,10) = %v", got)
	}
	if got := CircularDistance(90, 270); got != 180 {
		t.Errorf("CircularDistance(90,270) = %v", got)
	}
}
